package echo

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	app "github.com/lmartinez/contact-upload/internal/application/contact"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ContactHandler struct {
	save   app.SaveContacts
	stats  app.ContactStats
	export app.ExportContacts
	legacy app.LegacyImport
}

func NewContactHandler(save app.SaveContacts, stats app.ContactStats, export app.ExportContacts, legacy app.LegacyImport) *ContactHandler {
	return &ContactHandler{save: save, stats: stats, export: export, legacy: legacy}
}

func (h *ContactHandler) SaveContacts(c echo.Context) error {
	var records []map[string]any
	if err := c.Bind(&records); err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "request body must be a JSON array of row objects",
		}})
	}

	out, err := h.save.Execute(c.Request().Context(), app.SaveContactsInput{Records: records})
	if err != nil {
		if errors.Is(err, app.ErrEmptySave) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "empty_payload",
				Message: "no records to save",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: err.Error(),
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ContactHandler) Stats(c echo.Context) error {
	out, err := h.stats.Execute(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to count contacts",
		}})
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ContactHandler) Export(c echo.Context) error {
	out, err := h.export.Execute(c.Request().Context())
	if err != nil {
		if errors.Is(err, app.ErrNoContacts) {
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "not_found",
				Message: "no contacts to export",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to generate export",
		}})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", out.Filename))
	return c.Blob(http.StatusOK, xlsxContentType, out.Data)
}

func (h *ContactHandler) LegacyImport(c echo.Context) error {
	var records []json.RawMessage
	if err := c.Bind(&records); err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "request body must be a JSON array of row objects",
		}})
	}

	out, err := h.legacy.Execute(c.Request().Context(), app.LegacyImportInput{Records: records})
	if err != nil {
		if errors.Is(err, app.ErrEmptySave) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "empty_payload",
				Message: "no records to save",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: err.Error(),
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
