package handler

import (
	"intakealert/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupRedFlag struct {
	container *do.Injector
}

// Show serves the doctor-facing red flag page: localized at-a-glance text
// plus the reference videos.
func (gr *groupRedFlag) Show(c echo.Context) error {
	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	ctx := c.Request().Context()
	flag, err := serviceCatalog.GetRedFlag(ctx, c.Param("red_flag_id"))
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	languageCode := c.QueryParam("lang")
	if languageCode == "" {
		languageCode = services.FALLBACK_LANGUAGE_CODE
	}

	result := struct {
		RedFlagID       string `json:"red_flag_id"`
		Severity        string `json:"severity"`
		DoctorText      string `json:"doctor_text"`
		DoctorVideoURL  string `json:"doctor_video_url,omitempty"`
		PatientText     string `json:"patient_text"`
		PatientVideoURL string `json:"patient_video_url,omitempty"`
	}{
		RedFlagID:       flag.RedFlagID,
		Severity:        flag.Severity,
		DoctorText:      services.RedFlagDoctorText(flag, languageCode),
		DoctorVideoURL:  flag.DoctorVideoURL,
		PatientText:     services.RedFlagPatientText(flag, languageCode),
		PatientVideoURL: flag.PatientVideoURL,
	}

	return httpx.RestAbort(c, result, nil)
}
