// Package redis connects to Redis with retries and exposes a readiness
// check. The desk uses it to share transit durations between instances.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Errors wrap the go-redis cause with errors.Join, so both the sentinel and
// the cause can be matched.
package redis
