package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/wallet-ledger/backend/internal/domain/error"
	"github.com/wallet-ledger/backend/internal/domain/entity"
)

// CheckRebuildImpact is the safety guard in front of destructive historical
// writes. A write dated more than RebuildAgeDays in the past whose
// invalidation would force re-summing more than RebuildTxnThreshold
// transactions is rejected with a ConfirmationRequiredError carrying the
// impact count, unless the caller already confirmed with allowLargeRebuild.
//
// This is a user-facing circuit breaker against accidentally expensive cache
// rebuilds, not a hard limit.
func (e *Engine) CheckRebuildImpact(ctx context.Context, walletID uuid.UUID, date time.Time, allowLargeRebuild bool) error {
	date = entity.DateOf(date)

	if daysBetween(date, e.Today()) <= e.cfg.RebuildAgeDays {
		return nil
	}

	impact, err := e.repos.Transactions.CountSince(ctx, walletID, date)
	if err != nil {
		return err
	}
	if impact > e.cfg.RebuildTxnThreshold && !allowLargeRebuild {
		return domainerror.NewConfirmationRequiredError(impact)
	}

	return nil
}
