package workflows

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/services/inventory/domain/repositories"
	"github.com/ghuser/stockroom/services/inventory/domain/stats"
)

// LowStockDigestWorkflowID is the fixed workflow ID for the cron digest; a
// fixed ID guarantees at most one schedule exists regardless of how many
// workers start it.
const LowStockDigestWorkflowID = "inventory-lowstock-digest"

// OrgLister enumerates the organizations that own at least one item.
type OrgLister interface {
	ListOrgIDs(ctx context.Context) ([]uuid.UUID, error)
}

// OrgDigest summarizes one organization's items below their minimum level.
type OrgDigest struct {
	OrgID         uuid.UUID `json:"orgId"`
	LowStockCount int       `json:"lowStockCount"`
	Folders       []string  `json:"folders"`
}

// LowStockActivities holds the dependencies for digest activities.
type LowStockActivities struct {
	Items repositories.ItemRepository
	Orgs  OrgLister
	Log   logger.Logger
}

// BuildLowStockDigest computes the low-stock digest for every organization
// and logs each non-empty digest. It is the notification seam: delivery
// channels hook in here without touching the workflow.
func (a *LowStockActivities) BuildLowStockDigest(ctx context.Context) ([]OrgDigest, error) {
	orgIDs, err := a.Orgs.ListOrgIDs(ctx)
	if err != nil {
		return nil, err
	}

	digests := make([]OrgDigest, 0, len(orgIDs))
	for _, orgID := range orgIDs {
		items, err := a.Items.ListByOrgID(ctx, orgID)
		if err != nil {
			return nil, err
		}

		_, byFolder := stats.GroupByFolder(items)
		low := stats.LowStockByFolder(byFolder)
		if len(low) == 0 {
			continue
		}

		count := 0
		folders := make([]string, 0, len(low))
		for folder, folderItems := range low {
			count += len(folderItems)
			folders = append(folders, folder)
		}

		a.Log.InfoContext(ctx, "low stock digest",
			"org_id", orgID, "low_stock_items", count, "folders", folders)

		digests = append(digests, OrgDigest{
			OrgID:         orgID,
			LowStockCount: count,
			Folders:       folders,
		})
	}
	return digests, nil
}

// LowStockDigestWorkflow runs the digest activity once per cron tick.
func LowStockDigestWorkflow(ctx workflow.Context) error {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: 10 * time.Second,
			MaximumAttempts: 3,
		},
	})

	var a *LowStockActivities
	var digests []OrgDigest
	if err := workflow.ExecuteActivity(ctx, a.BuildLowStockDigest).Get(ctx, &digests); err != nil {
		return err
	}

	workflow.GetLogger(ctx).Info("low stock digest complete", "orgs_with_low_stock", len(digests))
	return nil
}
