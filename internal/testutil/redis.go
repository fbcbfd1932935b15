package testutil

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/redis/go-redis/v9"
)

// MemoryRedis answers GET, SET, DEL and PING from a map through a go-redis
// hook, so the client never dials.
type MemoryRedis struct {
	mu     sync.Mutex
	data   map[string]string
	hits   int
	misses int
}

// NewMemoryRedis returns a client backed by an empty MemoryRedis.
func NewMemoryRedis() (*redis.Client, *MemoryRedis) {
	m := &MemoryRedis{data: make(map[string]string)}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	client.AddHook(m)
	return client, m
}

func (m *MemoryRedis) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys
}

// Hits counts GETs that found a key.
func (m *MemoryRedis) Hits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits
}

func (m *MemoryRedis) Misses() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.misses
}

func (m *MemoryRedis) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, fmt.Errorf("memory redis does not dial")
	}
}

func (m *MemoryRedis) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		m.mu.Lock()
		defer m.mu.Unlock()

		args := cmd.Args()
		switch c := cmd.(type) {
		case *redis.StringCmd:
			if cmd.Name() != "get" {
				break
			}
			v, ok := m.data[argString(args[1])]
			if !ok {
				m.misses++
				c.SetErr(redis.Nil)
				return redis.Nil
			}
			m.hits++
			c.SetVal(v)
			return nil
		case *redis.StatusCmd:
			switch cmd.Name() {
			case "set":
				m.data[argString(args[1])] = argString(args[2])
				c.SetVal("OK")
				return nil
			case "ping":
				c.SetVal("PONG")
				return nil
			}
		case *redis.IntCmd:
			if cmd.Name() != "del" {
				break
			}
			var n int64
			for _, a := range args[1:] {
				if _, ok := m.data[argString(a)]; ok {
					delete(m.data, argString(a))
					n++
				}
			}
			c.SetVal(n)
			return nil
		}

		err := fmt.Errorf("memory redis: unsupported command %q", cmd.Name())
		cmd.SetErr(err)
		return err
	}
}

func (m *MemoryRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		return fmt.Errorf("memory redis does not pipeline")
	}
}

func argString(v interface{}) string {
	switch a := v.(type) {
	case string:
		return a
	case []byte:
		return string(a)
	default:
		return fmt.Sprint(a)
	}
}
