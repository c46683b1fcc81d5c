package echo

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	app "github.com/lmartinez/contact-upload/internal/application/contact"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

type UploadHandler struct {
	useCase app.ValidateWorkbook
}

func NewUploadHandler(useCase app.ValidateWorkbook) *UploadHandler {
	return &UploadHandler{useCase: useCase}
}

func (h *UploadHandler) UploadAndValidate(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "multipart field 'file' is required",
		}})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "could not read uploaded file",
		}})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "could not read uploaded file",
		}})
	}

	out, err := h.useCase.Execute(c.Request().Context(), app.ValidateWorkbookInput{
		Filename: fileHeader.Filename,
		Data:     data,
	})
	if err != nil {
		if errors.Is(err, app.ErrUnreadableFile) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "unreadable_file",
				Message: err.Error(),
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to validate workbook",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
