package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sujit-maker/move-sub001/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	BulkTransition BulkTransitioner
	Ledger         LedgerReader
	DateCorrection DateCorrector
	Jobs           JobLedger
	Reference      ReferenceReader
	JobLookup      JobLookup
	JWTSecret      string
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleOperations, jwt.RoleViewer)
	writers := RequireRole(jwt.RoleAdmin, jwt.RoleOperations)
	adminOnly := RequireRole(jwt.RoleAdmin)

	// Movements: las rutas fijas van antes de /:id
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.BulkTransition, deps.Ledger, deps.DateCorrection)
	movements.Post("/bulk-transition", writers, movementHandler.BulkTransition)
	movements.Get("/latest", anyRole, movementHandler.Latest)
	movements.Get("/history", anyRole, movementHandler.History)
	movements.Get("/transitions", anyRole, movementHandler.Transitions)
	movements.Get("/:id", anyRole, movementHandler.GetByID)
	movements.Patch("/:id/date", writers, movementHandler.CorrectDate)

	// Jobs
	jobs := protected.Group("/jobs")
	jobHandler := NewJobHandler(deps.Jobs, deps.JobLookup)
	jobs.Post("/containers", writers, jobHandler.Allot)
	jobs.Post("/containers/detach", writers, jobHandler.Detach)
	jobs.Delete("/movements", adminOnly, jobHandler.Purge)
	jobs.Get("/lookup", anyRole, jobHandler.Lookup)

	// Catálogos
	referenceHandler := NewReferenceHandler(deps.Reference)
	protected.Get("/ports", anyRole, referenceHandler.ListPorts)
	protected.Get("/address-book", anyRole, referenceHandler.ListAddressBook)
}
