package worker

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/devxankit/CRM-SaaS-sub000/internal/api/base/service"
	projectmodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/project/models"
	"github.com/devxankit/CRM-SaaS-sub000/internal/common"
	"github.com/devxankit/CRM-SaaS-sub000/internal/global"
	"github.com/devxankit/CRM-SaaS-sub000/internal/logger"
	"github.com/devxankit/CRM-SaaS-sub000/internal/utility"
)

// FinanceTotalsWorker đối soát lại totalAmount/totalPaid/totalPending của các
// dự án có installment plan. Việc recompute sau khi duyệt installment là
// best-effort trong request; worker này là lưới an toàn dọn các tổng bị stale
// khi request crash giữa chừng. Recompute idempotent nên chạy lại vô hại.
// Chạy định kỳ (mặc định 10 phút), mỗi lần xử lý tối đa batchSize dự án.
type FinanceTotalsWorker struct {
	projects  *basesvc.BaseServiceMongoImpl[projectmodels.Project]
	interval  time.Duration // Khoảng thời gian giữa các lần chạy
	batchSize int           // Số dự án tối đa mỗi lần
}

// financeTotals là khối tổng tài chính ghi đè lên project khi đối soát.
type financeTotals struct {
	TotalAmount  float64 `bson:"totalAmount"`
	TotalPaid    float64 `bson:"totalPaid"`
	TotalPending float64 `bson:"totalPending"`
}

// NewFinanceTotalsWorker tạo mới FinanceTotalsWorker.
func NewFinanceTotalsWorker(interval time.Duration, batchSize int) (*FinanceTotalsWorker, error) {
	projectCol, exist := global.RegistryCollections.Get(global.ColNames.Projects)
	if !exist {
		return nil, fmt.Errorf("failed to get projects collection: %v", common.ErrNotFound)
	}
	if interval < time.Minute {
		interval = 10 * time.Minute
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &FinanceTotalsWorker{
		projects:  basesvc.NewBaseServiceMongo[projectmodels.Project](projectCol),
		interval:  interval,
		batchSize: batchSize,
	}, nil
}

// Start chạy worker trong vòng lặp cho tới khi context bị cancel.
func (w *FinanceTotalsWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval":  w.interval.String(),
		"batchSize": w.batchSize,
	}).Info("Starting finance totals worker")

	for {
		select {
		case <-ctx.Done():
			log.Info("Finance totals worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("Panic while reconciling finance totals, will retry next run")
					}
				}()
				w.reconcileBatch(ctx)
			}()
		}
	}
}

// reconcileBatch quét một batch dự án có installment plan và sửa các tổng lệch.
func (w *FinanceTotalsWorker) reconcileBatch(ctx context.Context) {
	log := logger.GetAppLogger()

	opts := options.Find().
		SetLimit(int64(w.batchSize)).
		SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	list, err := w.projects.Find(ctx, bson.M{"installmentPlan.0": bson.M{"$exists": true}}, opts)
	if err != nil {
		log.WithError(err).Error("Failed to load projects for finance reconciliation")
		return
	}

	fixed := 0
	for i := range list {
		p := &list[i]
		var total, paid float64
		for _, inst := range p.InstallmentPlan {
			total += inst.Amount
			if inst.Status == projectmodels.InstallmentStatusPaid {
				paid += inst.Amount
			}
		}
		if p.TotalAmount == total && p.TotalPaid == paid && p.TotalPending == total-paid {
			continue
		}
		update, err := new(utility.CustomBson).Set(financeTotals{
			TotalAmount:  total,
			TotalPaid:    paid,
			TotalPending: total - paid,
		})
		if err != nil {
			log.WithError(err).WithField("project", p.ID.Hex()).
				Warn("Failed to build totals update, will retry next run")
			continue
		}
		_, err = w.projects.UpdateOne(ctx, bson.M{"_id": p.ID}, update, nil)
		if err != nil {
			log.WithError(err).WithField("project", p.ID.Hex()).
				Warn("Failed to reconcile project totals, will retry next run")
			continue
		}
		fixed++
	}
	if fixed > 0 {
		log.Infof("Reconciled finance totals for %d projects", fixed)
	}
}
