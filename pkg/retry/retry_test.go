package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errConflict = errors.New("version conflict")

func fastPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		MaxDelay:    4 * time.Millisecond,
	}
}

// TestPolicy_Do_Success 测试首次成功不重试
func TestPolicy_Do_Success(t *testing.T) {
	calls := 0
	err := fastPolicy().Do(context.Background(), func() error {
		calls++
		return nil
	}, func(error) bool { return true })

	if err != nil {
		t.Fatalf("期望成功，实际失败: %v", err)
	}
	if calls != 1 {
		t.Errorf("期望执行1次，实际%d次", calls)
	}
}

// TestPolicy_Do_RetryThenSuccess 测试冲突后重试成功
func TestPolicy_Do_RetryThenSuccess(t *testing.T) {
	calls := 0
	err := fastPolicy().Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errConflict
		}
		return nil
	}, func(err error) bool { return errors.Is(err, errConflict) })

	if err != nil {
		t.Fatalf("期望重试后成功，实际失败: %v", err)
	}
	if calls != 3 {
		t.Errorf("期望执行3次，实际%d次", calls)
	}
}

// TestPolicy_Do_Exhausted 测试重试耗尽返回最后错误
func TestPolicy_Do_Exhausted(t *testing.T) {
	calls := 0
	err := fastPolicy().Do(context.Background(), func() error {
		calls++
		return errConflict
	}, func(err error) bool { return errors.Is(err, errConflict) })

	if !errors.Is(err, errConflict) {
		t.Fatalf("期望返回冲突错误，实际: %v", err)
	}
	if calls != 3 {
		t.Errorf("期望执行3次（MaxAttempts），实际%d次", calls)
	}
}

// TestPolicy_Do_NonRetryable 测试业务错误立即上抛
func TestPolicy_Do_NonRetryable(t *testing.T) {
	errBusiness := errors.New("out of stock")
	calls := 0
	err := fastPolicy().Do(context.Background(), func() error {
		calls++
		return errBusiness
	}, func(err error) bool { return errors.Is(err, errConflict) })

	if !errors.Is(err, errBusiness) {
		t.Fatalf("期望返回业务错误，实际: %v", err)
	}
	if calls != 1 {
		t.Errorf("业务错误不应重试，期望1次，实际%d次", calls)
	}
}

// TestPolicy_Do_ContextCancelled 测试context取消中断重试
func TestPolicy_Do_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	p := Policy{
		MaxAttempts: 10,
		BaseDelay:   50 * time.Millisecond,
		MaxDelay:    time.Second,
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := p.Do(ctx, func() error {
		return errConflict
	}, func(error) bool { return true })

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("期望context.Canceled，实际: %v", err)
	}
}
