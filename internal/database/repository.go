package database

import (
	"github.com/threadguard/threadguard/internal/database/models"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	actor      *models.ActorModel
	rateWindow *models.RateWindowModel
	rule       *models.RuleModel
	keyword    *models.KeywordModel
	report     *models.ReportModel
	escalation *models.EscalationModel
	action     *models.ActionModel
	signal     *models.SignalModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		actor:      models.NewActor(db, logger),
		rateWindow: models.NewRateWindow(db, logger),
		rule:       models.NewRule(db, logger),
		keyword:    models.NewKeyword(db, logger),
		report:     models.NewReport(db, logger),
		escalation: models.NewEscalation(db, logger),
		action:     models.NewAction(db, logger),
		signal:     models.NewSignal(db, logger),
	}
}

// Actor returns the actor model repository.
func (r *Repository) Actor() *models.ActorModel {
	return r.actor
}

// RateWindow returns the rate window model repository.
func (r *Repository) RateWindow() *models.RateWindowModel {
	return r.rateWindow
}

// Rule returns the automation rule model repository.
func (r *Repository) Rule() *models.RuleModel {
	return r.rule
}

// Keyword returns the keyword model repository.
func (r *Repository) Keyword() *models.KeywordModel {
	return r.keyword
}

// Report returns the report model repository.
func (r *Repository) Report() *models.ReportModel {
	return r.report
}

// Escalation returns the escalation model repository.
func (r *Repository) Escalation() *models.EscalationModel {
	return r.escalation
}

// Action returns the moderation action model repository.
func (r *Repository) Action() *models.ActionModel {
	return r.action
}

// Signal returns the abuse signal model repository.
func (r *Repository) Signal() *models.SignalModel {
	return r.signal
}
