package iauditrepo

import (
	"context"

	"github.com/corray333/swiftserve/internal/service/models/auditlog"
)

// IAuditorRepository is interface for auditor repository.
type IAuditorRepository interface {
	LogTransitions(ctx context.Context, transitions []auditlog.OrderTransition) error
}
