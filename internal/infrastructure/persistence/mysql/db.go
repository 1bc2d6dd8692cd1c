package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/checkproof/inventory/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 注意：这里使用GORM的模型定义（带tag），不是domain层的实体
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ItemModel{},
		&VariantModel{},
		&StockModel{},
		&StockMovementModel{},
	)
}

// ItemModel GORM商品模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/item/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
// 4. Description有唯一索引（业务唯一标识）
type ItemModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"index:idx_search;size:200;not null;comment:商品名称"`
	Description string    `gorm:"uniqueIndex;size:255;not null;comment:商品描述(业务唯一)"`
	Category    string    `gorm:"index;size:50;comment:分类"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (ItemModel) TableName() string {
	return "items"
}

// VariantModel GORM规格模型
// 设计说明：
// 1. SKU有唯一索引，防止重复
// 2. 价格使用int64存储"分"为单位（避免浮点数精度问题）
// 3. ItemID索引支持按商品查询规格列表
type VariantModel struct {
	ID        uint      `gorm:"primaryKey"`
	ItemID    uint      `gorm:"index;not null;comment:所属商品ID"`
	Name      string    `gorm:"size:100;not null;comment:规格名称"`
	SKU       string    `gorm:"uniqueIndex;size:64;not null;comment:SKU编码"`
	Price     int64     `gorm:"not null;comment:价格(分)"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (VariantModel) TableName() string {
	return "variants"
}

// StockModel GORM库存模型
// 设计说明：
// 1. VariantID唯一索引：每个规格至多一条库存记录,
//    并发懒创建时第二个插入者撞唯一键,转为版本冲突重试
// 2. Version乐观锁版本号：更新走WHERE variant_id=? AND version=?,
//    影响行数为0说明并发修改,触发重试
type StockModel struct {
	ID        uint      `gorm:"primaryKey"`
	VariantID uint      `gorm:"uniqueIndex;not null;comment:规格ID"`
	Available int       `gorm:"not null;default:0;comment:在库数量"`
	Allocated int       `gorm:"not null;default:0;comment:已预占数量"`
	Version   int64     `gorm:"not null;default:0;comment:乐观锁版本号"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (StockModel) TableName() string {
	return "stock_records"
}

// StockMovementModel GORM库存流水模型
// 设计说明：
// 1. 只增不改的审计日志表
// 2. 复合索引(variant_id, created_at)支持按规格查询流水时间线
type StockMovementModel struct {
	ID              uint      `gorm:"primaryKey"`
	VariantID       uint      `gorm:"index:idx_variant_time;not null;comment:规格ID"`
	Op              string    `gorm:"size:16;not null;comment:流转操作类型"`
	Quantity        int       `gorm:"not null;comment:请求数量"`
	BeforeAvailable int       `gorm:"not null;comment:流转前在库数量"`
	BeforeAllocated int       `gorm:"not null;comment:流转前预占数量"`
	AfterAvailable  int       `gorm:"not null;comment:流转后在库数量"`
	AfterAllocated  int       `gorm:"not null;comment:流转后预占数量"`
	Remark          string    `gorm:"size:255;comment:备注"`
	CreatedAt       time.Time `gorm:"index:idx_variant_time;comment:创建时间"`
}

// TableName 指定表名
func (StockMovementModel) TableName() string {
	return "stock_movements"
}
