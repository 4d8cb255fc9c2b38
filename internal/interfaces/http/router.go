package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/consulta-cnpj/internal/application/lookup"
)

// Roles con acceso al histórico.
const (
	RoleAdmin   = "admin"
	RoleAuditor = "auditor"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LookupUC  *lookup.LookupUseCase
	PDFUC     *lookup.PDFUseCase     // opcional
	HistoryUC *lookup.HistoryUseCase // opcional (requiere base de datos)
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// CNPJ (público)
	cnpjHandler := NewCNPJHandler(deps.LookupUC, deps.PDFUC)
	// La máscara NN.NNN.NNN/NNNN-NN con barra literal llega como dos segmentos (:root/:branch).
	// minLen(6) evita que /cnpj/<id>/pdf caiga en :root/:branch.
	api.Get("/cnpj", cnpjHandler.Lookup)
	api.Get("/cnpj/:cnpj", cnpjHandler.Lookup)
	api.Get("/cnpj/:root/:branch<minLen(6)>", cnpjHandler.Lookup)
	if deps.PDFUC != nil {
		api.Get("/cnpj/:cnpj/pdf", cnpjHandler.DownloadPDF)
		api.Get("/cnpj/:root/:branch<minLen(6)>/pdf", cnpjHandler.DownloadPDF)
	}

	// Histórico (protegido, solo con persistencia)
	if deps.HistoryUC != nil {
		historyHandler := NewHistoryHandler(deps.HistoryUC)
		api.Get("/lookups",
			AuthMiddleware(deps.JWTSecret),
			RequireRole(RoleAdmin, RoleAuditor),
			historyHandler.List,
		)
	}
}
