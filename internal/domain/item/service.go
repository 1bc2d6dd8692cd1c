package item

import (
	"context"
)

// Service 商品领域服务接口
// 设计说明:
// 1. 领域服务封装跨实体的业务规则校验(描述唯一性)
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// CreateItem 创建商品
	// 业务规则:名称和描述非空,描述不能重复
	CreateItem(ctx context.Context, name, description, category string) (*Item, error)

	// GetItemByID 根据ID获取商品详情
	GetItemByID(ctx context.Context, id uint) (*Item, error)

	// UpdateItem 更新商品信息(空字段不修改)
	UpdateItem(ctx context.Context, id uint, name, description, category string) (*Item, error)

	// DeleteItem 删除商品
	// 注意:规格和库存的级联删除在应用层事务中编排
	DeleteItem(ctx context.Context, id uint) error

	// ListItems 分页查询商品列表
	ListItems(ctx context.Context, params ListParams) ([]*Item, int64, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建商品领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateItem 创建商品
func (s *service) CreateItem(ctx context.Context, name, description, category string) (*Item, error) {
	// 1. 创建实体并校验基本属性
	it := NewItem(name, description, category)
	if err := it.Validate(); err != nil {
		return nil, err
	}

	// 2. 描述唯一性检查(数据库唯一索引兜底)
	existing, err := s.repo.FindByDescription(ctx, it.Description)
	if err == nil && existing != nil {
		return nil, ErrDescriptionDuplicate
	}
	if err != nil && err != ErrItemNotFound {
		return nil, err
	}

	// 3. 持久化
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}

	return it, nil
}

// GetItemByID 根据ID获取商品
func (s *service) GetItemByID(ctx context.Context, id uint) (*Item, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateItem 更新商品信息
func (s *service) UpdateItem(ctx context.Context, id uint, name, description, category string) (*Item, error) {
	// 1. 查询商品
	it, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 描述变更时检查唯一性
	if description != "" && description != it.Description {
		existing, err := s.repo.FindByDescription(ctx, description)
		if err == nil && existing != nil && existing.ID != id {
			return nil, ErrDescriptionDuplicate
		}
		if err != nil && err != ErrItemNotFound {
			return nil, err
		}
	}

	// 3. 更新并持久化
	it.UpdateInfo(name, description, category)
	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}

	return it, nil
}

// DeleteItem 删除商品
func (s *service) DeleteItem(ctx context.Context, id uint) error {
	// 先确认存在,保证删除不存在的商品返回404而不是静默成功
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListItems 分页查询商品列表
func (s *service) ListItems(ctx context.Context, params ListParams) ([]*Item, int64, error) {
	return s.repo.List(ctx, params)
}
