package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/checkproof/inventory/internal/domain/stock"
	apperrors "github.com/checkproof/inventory/pkg/errors"
)

// stockRepository 库存仓储实现(MySQL,乐观锁)
//
// 设计说明:
// 1. 不用SELECT FOR UPDATE:库存流转是短事务读改写,
//    乐观锁在常规争用下吞吐更好,冲突交给上层有界重试
// 2. Save的两条路径都把并发问题归一为ErrVersionConflict:
//    - 插入撞variant_id唯一键 → 并发懒创建,重读即可拿到对方的记录
//    - 条件更新影响行数为0 → 并发修改,重读拿到新版本
// 3. 版本号只由本仓储递增,领域实体不维护它
type stockRepository struct {
	db *gorm.DB
}

// NewStockRepository 创建库存仓储
func NewStockRepository(db *gorm.DB) stock.Repository {
	return &stockRepository{db: db}
}

// GetByVariantID 按规格ID查询库存记录
func (r *stockRepository) GetByVariantID(ctx context.Context, variantID uint) (*stock.Record, error) {
	var model StockModel
	err := getDB(ctx, r.db).Where("variant_id = ?", variantID).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, stock.ErrStockNotFound
		}
		return nil, apperrors.Wrap(err, "查询库存记录失败")
	}

	return toStockEntity(&model), nil
}

// Save 保存库存记录(乐观锁)
func (r *stockRepository) Save(ctx context.Context, rec *stock.Record) error {
	db := getDB(ctx, r.db)

	// Version==0:新记录,执行插入
	if rec.Version == 0 {
		model := &StockModel{
			VariantID: rec.VariantID,
			Available: rec.Available,
			Allocated: rec.Allocated,
			Version:   1,
		}
		if err := db.Create(model).Error; err != nil {
			if isDuplicateError(err) {
				// 并发懒创建:对方先插入成功,转为版本冲突让上层重读重试
				return stock.ErrVersionConflict
			}
			return apperrors.Wrap(err, "创建库存记录失败")
		}
		rec.Version = 1
		rec.CreatedAt = model.CreatedAt
		rec.UpdatedAt = model.UpdatedAt
		return nil
	}

	// Version>0:条件更新
	// UPDATE stock_records SET available=?, allocated=?, version=version+1
	// WHERE variant_id=? AND version=?
	result := db.Model(&StockModel{}).
		Where("variant_id = ? AND version = ?", rec.VariantID, rec.Version).
		Updates(map[string]interface{}{
			"available": rec.Available,
			"allocated": rec.Allocated,
			"version":   rec.Version + 1,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新库存记录失败")
	}
	if result.RowsAffected == 0 {
		// 版本号不匹配(并发修改)或记录被删除
		return stock.ErrVersionConflict
	}

	rec.Version++
	return nil
}

// DeleteByVariantID 删除库存记录(规格删除时级联)
// 记录不存在不视为错误
func (r *stockRepository) DeleteByVariantID(ctx context.Context, variantID uint) error {
	if err := getDB(ctx, r.db).Where("variant_id = ?", variantID).Delete(&StockModel{}).Error; err != nil {
		return apperrors.Wrap(err, "删除库存记录失败")
	}
	return nil
}

// ListLowStock 查询可售数量低于阈值的库存记录(低库存巡检)
func (r *stockRepository) ListLowStock(ctx context.Context, threshold int) ([]*stock.Record, error) {
	var models []StockModel
	err := getDB(ctx, r.db).
		Where("available - allocated < ?", threshold).
		Order("available - allocated ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询低库存记录失败")
	}

	records := make([]*stock.Record, len(models))
	for i := range models {
		records[i] = toStockEntity(&models[i])
	}
	return records, nil
}

// toStockEntity GORM模型 → 领域实体
func toStockEntity(model *StockModel) *stock.Record {
	return &stock.Record{
		VariantID: model.VariantID,
		Available: model.Available,
		Allocated: model.Allocated,
		Version:   model.Version,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
