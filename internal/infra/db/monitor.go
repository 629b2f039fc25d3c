package db

import (
	"context"
	"database/sql"
	"log/slog"
	"time"
)

// *sql.DBが満たす
type PoolPinger interface {
	PingContext(ctx context.Context) error
	Stats() sql.DBStats
}

// Monitor はctxが終わるまでinterval毎にDBへpingし、失敗と接続プールの状況をログに出す。
// DBが落ちていてもサーバーは止めない（/healthzが503を返す）。intervalが0なら何もしない。
func Monitor(ctx context.Context, db PoolPinger, interval time.Duration, log *slog.Logger) error {
	if interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	healthy := true
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		pingCtx, cancel := context.WithTimeout(ctx, interval)
		err := db.PingContext(pingCtx)
		cancel()

		st := db.Stats()
		switch {
		case err != nil && ctx.Err() != nil:
			return nil
		case err != nil:
			healthy = false
			log.WarnContext(ctx, "db ping failed",
				slog.Any("err", err),
				slog.Int("open", st.OpenConnections),
				slog.Int("in_use", st.InUse),
			)
		case !healthy:
			healthy = true
			log.InfoContext(ctx, "db ping recovered")
		default:
			log.DebugContext(ctx, "db pool",
				slog.Int("open", st.OpenConnections),
				slog.Int("in_use", st.InUse),
				slog.Int("idle", st.Idle),
				slog.Int64("wait_count", st.WaitCount),
			)
		}
	}
}
