package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/MrSnakeDoc/quotewits/internal/logger"
)

func testOptions(addr string) ConnectOptions {
	return ConnectOptions{
		Addr:           addr,
		DialTimeout:    100 * time.Millisecond,
		ReadTimeout:    100 * time.Millisecond,
		WriteTimeout:   100 * time.Millisecond,
		PoolSize:       2,
		ConnectTimeout: 300 * time.Millisecond,
		RetryInterval:  20 * time.Millisecond,
		MaxWait:        50 * time.Millisecond,
		PingTimeout:    100 * time.Millisecond,
		WarnThreshold:  1,
	}
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), testOptions(mr.Addr()), logger.NewNop())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestConnectTimesOut(t *testing.T) {
	// nothing listens on port 1
	_, err := Connect(context.Background(), testOptions("127.0.0.1:1"), logger.NewNop())
	if err == nil {
		t.Fatal("Connect() expected error when redis is unreachable")
	}
}

func TestConnectRejectsInvalidOptions(t *testing.T) {
	opts := testOptions("localhost:6379")
	opts.RetryInterval = 0

	if _, err := Connect(context.Background(), opts, logger.NewNop()); err == nil {
		t.Fatal("Connect() expected error for zero RetryInterval")
	}
}

func TestNextWait(t *testing.T) {
	tests := []struct {
		wait, limit, want time.Duration
	}{
		{time.Second, 10 * time.Second, 2 * time.Second},
		{4 * time.Second, 5 * time.Second, 5 * time.Second},
		{10 * time.Second, 10 * time.Second, 10 * time.Second},
	}
	for _, tt := range tests {
		if got := nextWait(tt.wait, tt.limit); got != tt.want {
			t.Errorf("nextWait(%v, %v) = %v, want %v", tt.wait, tt.limit, got, tt.want)
		}
	}
}
