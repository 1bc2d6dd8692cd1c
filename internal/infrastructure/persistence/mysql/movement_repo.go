package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/checkproof/inventory/internal/domain/stock"
	apperrors "github.com/checkproof/inventory/pkg/errors"
)

// movementRepository 库存流水仓储实现(MySQL)
// 只增不改的审计日志表
type movementRepository struct {
	db *gorm.DB
}

// NewMovementRepository 创建库存流水仓储
func NewMovementRepository(db *gorm.DB) stock.MovementRepository {
	return &movementRepository{db: db}
}

// Create 追加一条流水
// 必须与库存记录的保存在同一事务中调用(通过getDB参与事务)
func (r *movementRepository) Create(ctx context.Context, mv *stock.Movement) error {
	model := &StockMovementModel{
		VariantID:       mv.VariantID,
		Op:              string(mv.Op),
		Quantity:        mv.Quantity,
		BeforeAvailable: mv.BeforeAvailable,
		BeforeAllocated: mv.BeforeAllocated,
		AfterAvailable:  mv.AfterAvailable,
		AfterAllocated:  mv.AfterAllocated,
		Remark:          mv.Remark,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "写入库存流水失败")
	}

	mv.ID = model.ID
	mv.CreatedAt = model.CreatedAt
	return nil
}

// ListByVariantID 分页查询某规格的流水(按时间倒序)
func (r *movementRepository) ListByVariantID(ctx context.Context, variantID uint, offset, limit int) ([]*stock.Movement, int64, error) {
	var models []StockMovementModel
	var total int64

	query := getDB(ctx, r.db).Model(&StockMovementModel{}).Where("variant_id = ?", variantID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询流水总数失败")
	}

	err := query.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询流水列表失败")
	}

	movements := make([]*stock.Movement, len(models))
	for i := range models {
		m := &models[i]
		movements[i] = &stock.Movement{
			ID:              m.ID,
			VariantID:       m.VariantID,
			Op:              stock.Op(m.Op),
			Quantity:        m.Quantity,
			BeforeAvailable: m.BeforeAvailable,
			BeforeAllocated: m.BeforeAllocated,
			AfterAvailable:  m.AfterAvailable,
			AfterAllocated:  m.AfterAllocated,
			Remark:          m.Remark,
			CreatedAt:       m.CreatedAt,
		}
	}
	return movements, total, nil
}
