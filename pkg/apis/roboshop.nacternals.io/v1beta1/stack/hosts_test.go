package stack

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHostsEach(t *testing.T) {
	hosts := Hosts{
		&Host{Roles: []string{"mongodb"}},
		&Host{Roles: []string{"catalogue", "user"}},
	}

	t.Run("success", func(t *testing.T) {
		var visited []string
		fn := func(_ context.Context, h *Host) error {
			visited = append(visited, h.Roles[0])
			return nil
		}
		err := hosts.Each(context.Background(), fn)
		require.NoError(t, err)
		require.Equal(t, []string{"mongodb", "catalogue"}, visited)
	})

	t.Run("context cancel", func(t *testing.T) {
		var count int
		ctx, cancel := context.WithCancel(context.Background())

		fn := func(ctx context.Context, h *Host) error {
			count++
			cancel()
			return nil
		}
		err := hosts.Each(ctx, fn)
		require.Equal(t, 1, count)
		require.Error(t, err)
		require.ErrorContains(t, err, "cancel")
	})

	t.Run("error", func(t *testing.T) {
		fn := func(_ context.Context, h *Host) error {
			return errors.New("test")
		}
		err := hosts.Each(context.Background(), fn)
		require.Error(t, err)
		require.ErrorContains(t, err, "test")
	})
}

func TestHostsParallelEach(t *testing.T) {
	hosts := Hosts{
		&Host{Roles: []string{"mongodb"}},
		&Host{Roles: []string{"mysql"}},
		&Host{Roles: []string{"redis"}},
	}

	t.Run("all hosts visited", func(t *testing.T) {
		got := make(chan string, len(hosts))
		fn := func(_ context.Context, h *Host) error {
			got <- h.Roles[0]
			return nil
		}
		err := hosts.ParallelEach(context.Background(), 2, fn)
		require.NoError(t, err)
		close(got)
		var visited []string
		for r := range got {
			visited = append(visited, r)
		}
		require.ElementsMatch(t, []string{"mongodb", "mysql", "redis"}, visited)
	})

	t.Run("errors are combined", func(t *testing.T) {
		fn := func(_ context.Context, h *Host) error {
			if h.HasRole("mysql") || h.HasRole("redis") {
				return errors.New("boom")
			}
			return nil
		}
		err := hosts.ParallelEach(context.Background(), 3, fn)
		require.Error(t, err)
		require.ErrorContains(t, err, "failed on 2 hosts")
	})
}

func TestHostsWithRole(t *testing.T) {
	hosts := Hosts{
		&Host{Roles: []string{"mongodb"}},
		&Host{Roles: []string{"catalogue", "mongodb"}},
		&Host{Roles: []string{"web"}},
	}
	require.Len(t, hosts.WithRole("mongodb"), 2)
	require.Len(t, hosts.WithRole("web"), 1)
	require.Empty(t, hosts.WithRole("mysql"))
	require.Equal(t, []string{"mongodb", "catalogue", "web"}, hosts.Roles())
}
