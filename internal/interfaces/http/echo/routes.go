package echo

import e "github.com/labstack/echo/v4"

func RegisterRoutes(server *e.Echo, uploadHandler *UploadHandler, contactHandler *ContactHandler, progressHandler *ProgressHandler) {
	server.POST("/api/v1/uploads/validate", uploadHandler.UploadAndValidate)
	server.POST("/api/v1/contacts/import", contactHandler.SaveContacts)
	server.GET("/api/v1/contacts/stats", contactHandler.Stats)
	server.GET("/api/v1/contacts/export", contactHandler.Export)
	server.POST("/api/v1/contacts/legacy-import", contactHandler.LegacyImport)
	server.GET("/ws/progress", progressHandler.Stream)
}
