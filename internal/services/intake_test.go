package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"intakealert/internal/models"

	"github.com/rs/zerolog"
)

type fakeNotifier struct {
	notified int
	payloads []models.RedFlagPayload
	err      error
}

func (f *fakeNotifier) Notify(ctx context.Context, doctor *models.Doctor, submission *models.PatientSubmission, payloads []models.RedFlagPayload) error {
	f.notified++
	f.payloads = payloads
	return f.err
}

func (f *fakeNotifier) NotifyDigest(ctx context.Context, doctor *models.Doctor, submissions []*models.PatientSubmission) error {
	f.notified++
	return f.err
}

func TestDerivePatientID_Deterministic(t *testing.T) {
	secret := []byte("test-secret")

	first := DerivePatientID(secret, "Asha Rao", "+919812345678")
	second := DerivePatientID(secret, "Asha Rao", "+919812345678")
	if first != second {
		t.Errorf("expected stable derivation, got %q and %q", first, second)
	}

	if matched, _ := regexp.MatchString("^[0-9a-f]{32}$", first); !matched {
		t.Errorf("expected 32 lowercase hex chars, got %q", first)
	}
}

func TestDerivePatientID_InputSensitivity(t *testing.T) {
	secret := []byte("test-secret")
	base := DerivePatientID(secret, "Asha Rao", "+919812345678")

	if got := DerivePatientID(secret, "Asha Rai", "+919812345678"); got == base {
		t.Error("expected different id for different name")
	}
	if got := DerivePatientID(secret, "Asha Rao", "+919812345679"); got == base {
		t.Error("expected different id for different mobile")
	}
	if got := DerivePatientID([]byte("other-secret"), "Asha Rao", "+919812345678"); got == base {
		t.Error("expected different id under different secret")
	}
}

func TestGenerateRecordID_Shape(t *testing.T) {
	recordID, err := GenerateRecordID(context.Background(), func(ctx context.Context, id string) (bool, error) {
		return false, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matched, _ := regexp.MatchString("^[0-9a-f]{8}$", recordID); !matched {
		t.Errorf("expected 8 lowercase hex chars, got %q", recordID)
	}
}

func TestGenerateRecordID_RetriesOnCollision(t *testing.T) {
	calls := 0
	recordID, err := GenerateRecordID(context.Background(), func(ctx context.Context, id string) (bool, error) {
		calls++
		return calls < 3, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 probes, got %d", calls)
	}
	if recordID == "" {
		t.Error("expected a record id after retries")
	}
}

func TestGenerateRecordID_ExhaustsRetries(t *testing.T) {
	_, err := GenerateRecordID(context.Background(), func(ctx context.Context, id string) (bool, error) {
		return true, nil
	})
	if err == nil {
		t.Fatal("expected error when every candidate collides")
	}
}

func TestGenerateRecordID_PropagatesLookupError(t *testing.T) {
	lookupErr := errors.New("db down")
	_, err := GenerateRecordID(context.Background(), func(ctx context.Context, id string) (bool, error) {
		return false, lookupErr
	})
	if !errors.Is(err, lookupErr) {
		t.Errorf("expected lookup error to propagate, got %v", err)
	}
}

func TestRedFlagPayloads_LocalizedAndSkipsUnknown(t *testing.T) {
	snapshot := backSnapshot()
	snapshot.RedFlags["rf_cauda_equina"].DefaultPatientResponse = "Seek urgent care."
	snapshot.RedFlags["rf_cauda_equina"].DoctorAtAGlance = "Rule out cauda equina."

	payloads := RedFlagPayloads(snapshot, []string{"rf_cauda_equina", "rf_retired"}, "hi")
	if len(payloads) != 1 {
		t.Fatalf("expected unknown flag ids to be skipped, got %d payloads", len(payloads))
	}
	if payloads[0].RedFlag.RedFlagID != "rf_cauda_equina" {
		t.Errorf("unexpected flag %q", payloads[0].RedFlag.RedFlagID)
	}
	if payloads[0].PatientText != "Seek urgent care." {
		t.Errorf("expected default patient text, got %q", payloads[0].PatientText)
	}
	if payloads[0].DoctorText != "Rule out cauda equina." {
		t.Errorf("expected default doctor text, got %q", payloads[0].DoctorText)
	}
}

func TestRedFlagPayloads_EmptyFlagList(t *testing.T) {
	snapshot := backSnapshot()
	if payloads := RedFlagPayloads(snapshot, nil, "en"); len(payloads) != 0 {
		t.Errorf("expected no payloads, got %d", len(payloads))
	}
}

func TestSubmit_RequiresPatientIdentity(t *testing.T) {
	notifier := &fakeNotifier{}
	service := &ServiceIntake{notifier: notifier, logger: zerolog.Nop(), secret: []byte("s")}

	doctor := &models.Doctor{ID: 1, Email: "doc@example.com"}
	language := &models.Language{Code: "en"}

	_, _, err := service.Submit(context.Background(), doctor, backSnapshot(), language, "", "+919812345678", models.AnswerMap{})
	if err == nil {
		t.Fatal("expected error for missing name")
	}
	_, _, err = service.Submit(context.Background(), doctor, backSnapshot(), language, "Asha Rao", "", models.AnswerMap{})
	if err == nil {
		t.Fatal("expected error for missing mobile")
	}
	if notifier.notified != 0 {
		t.Errorf("expected no notification on rejected submission, got %d", notifier.notified)
	}
}

func TestSubmit_ValidationFailureNotifiesNothing(t *testing.T) {
	notifier := &fakeNotifier{}
	service := &ServiceIntake{notifier: notifier, logger: zerolog.Nop(), secret: []byte("s")}
	language := &models.Language{Code: "en"}

	// required select unanswered, rejected before anything is recorded
	_, _, err := service.Submit(context.Background(), &models.Doctor{ID: 1}, backSnapshot(), language, "Asha Rao", "+919812345678", models.AnswerMap{})
	if err == nil || !strings.Contains(err.Error(), "requires an answer") {
		t.Fatalf("expected answer validation error, got %v", err)
	}
	if notifier.notified != 0 {
		t.Errorf("expected no notification, got %d", notifier.notified)
	}
}

func TestDispatchNotification_FailureSwallowed(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("smtp unreachable")}
	service := &ServiceIntake{notifier: notifier, logger: zerolog.Nop()}

	snapshot := backSnapshot()
	payloads := RedFlagPayloads(snapshot, []string{"rf_infection"}, "en")

	// must not panic or propagate
	service.dispatchNotification(context.Background(), &models.Doctor{ID: 1, Email: "doc@example.com"}, &models.PatientSubmission{RecordID: "abcd1234"}, payloads)

	if notifier.notified != 1 {
		t.Errorf("expected one delivery attempt, got %d", notifier.notified)
	}
	if len(notifier.payloads) != 1 {
		t.Errorf("expected the localized payloads to reach the sink, got %d", len(notifier.payloads))
	}
}
