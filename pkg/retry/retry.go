// Package retry 实现有界重试策略（用于乐观并发冲突）
//
// 核心思想：
// 1. 乐观锁冲突是瞬时错误：换个版本重读重算，大概率就能成功
// 2. 重试必须有上限：高争用下无界重试会形成活锁，耗尽资源
// 3. 指数退避：每次失败后等待时间翻倍，给竞争者让出窗口
//
// 与熔断器的区别：
// - 熔断器保护的是"远端依赖持续故障"场景（快速失败）
// - 重试策略处理的是"本地写写冲突"场景（让步后再试）
// - 库存服务是单存储架构，没有远端依赖，只需要后者
package retry

import (
	"context"
	"time"
)

// Policy 重试策略
// 零值不可用，请通过DefaultPolicy或显式字段构造
type Policy struct {
	MaxAttempts int           // 最大尝试次数（含首次执行）
	BaseDelay   time.Duration // 首次重试前的等待时间
	MaxDelay    time.Duration // 退避上限
}

// DefaultPolicy 默认策略：5次尝试，10ms起步指数退避，上限200ms
// 设计说明：库存写冲突的持续时间通常是毫秒级（一次读改写的窗口），
// 小步快跑的退避比长等待更合适；5次仍冲突说明争用激烈，应交还调用方
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 5,
		BaseDelay:   10 * time.Millisecond,
		MaxDelay:    200 * time.Millisecond,
	}
}

// Do 执行fn，失败且retryable(err)为真时按策略重试
//
// 返回值：
// - fn成功 → nil
// - 不可重试错误 → 该错误原样返回（业务错误不属于并发冲突，立即上抛）
// - 重试耗尽 → 最后一次的错误
// - context取消 → ctx.Err()
func (p Policy) Do(ctx context.Context, fn func() error, retryable func(error) bool) error {
	delay := p.BaseDelay

	var err error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
		if attempt == p.MaxAttempts {
			break
		}

		// 等待退避窗口或context取消
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		// 指数退避
		delay *= 2
		if delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}

	return err
}
