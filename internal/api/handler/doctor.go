package handler

import (
	"intakealert/internal/models"
	"intakealert/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupDoctor struct {
	container *do.Injector
}

func (gr *groupDoctor) Create(c echo.Context) error {
	serviceDoctor, err := do.Invoke[*services.ServiceDoctor](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var payload services.DoctorInput
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	ctx := c.Request().Context()
	doctor, link, err := serviceDoctor.CreateDoctor(ctx, &payload)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	result := struct {
		Doctor *models.Doctor     `json:"doctor"`
		Link   *models.DoctorLink `json:"link"`
	}{
		Doctor: doctor,
		Link:   link,
	}

	return httpx.RestAbort(c, result, nil)
}
