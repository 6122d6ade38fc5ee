package compute

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/OluSmartDev/3mtt-module3-miniprojects/internal/config"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/logger"
	reasoncodes "github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/reason_codes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPool(t *testing.T, workers, queue int) *Pool {
	pool := NewPool(config.ComputeConfig{Workers: workers, QueueSize: queue}, logger.Nop())
	pool.StartService()
	t.Cleanup(pool.StopService)
	return pool
}

func TestHeavyComputation(t *testing.T) {
	assert.Equal(t, int64(50000005000000), HeavyComputation(DefaultLimit))
	assert.Equal(t, int64(55), HeavyComputation(10))
	assert.Zero(t, HeavyComputation(0))
}

func TestPoolRunsTasks(t *testing.T) {
	pool := newPool(t, 2, 16)

	var wg sync.WaitGroup
	results := make([]int64, 10)
	errs := make([]error, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = pool.Submit(context.Background(), func() int64 { return int64(i) * 2 })
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, int64(i)*2, results[i])
	}
}

func TestPoolRejectsWhenQueueIsFull(t *testing.T) {
	// not started, so the single queue slot stays occupied
	pool := NewPool(config.ComputeConfig{Workers: 1, QueueSize: 1}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	queued := make(chan error, 1)
	go func() {
		_, err := pool.Submit(ctx, func() int64 { return 1 })
		queued <- err
	}()
	require.Eventually(t, func() bool { return len(pool.queue) == 1 }, time.Second, time.Millisecond)

	_, err := pool.Submit(context.Background(), func() int64 { return 2 })
	assert.ErrorIs(t, err, reasoncodes.ErrServiceUnavailable)

	cancel()
	assert.ErrorIs(t, <-queued, context.Canceled)
}

func TestPoolRejectsAfterStop(t *testing.T) {
	pool := NewPool(config.ComputeConfig{Workers: 1, QueueSize: 1}, logger.Nop())
	pool.StartService()
	pool.StopService()
	pool.StopService()

	_, err := pool.Submit(context.Background(), func() int64 { return 1 })
	assert.ErrorIs(t, err, reasoncodes.ErrServiceUnavailable)
}

func TestSubmitHonoursContext(t *testing.T) {
	pool := newPool(t, 1, 1)
	release := make(chan struct{})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := pool.Submit(ctx, func() int64 {
		<-release
		return 1
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func newRouter(t *testing.T, h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	for _, r := range h.Routes() {
		r.Register(router.Group("/" + r.Group))
	}
	router.NoRoute(NotFound)
	return router
}

func TestComputeEndpoint(t *testing.T) {
	router := newRouter(t, NewHandler(newPool(t, 1, 1)))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/compute", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":50000005000000}`, w.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	router := newRouter(t, NewHandler(newPool(t, 1, 1)))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/other", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Route not found", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestComputeEndpointWhenPoolStopped(t *testing.T) {
	pool := NewPool(config.ComputeConfig{Workers: 1, QueueSize: 1}, logger.Nop())
	pool.StopService()
	router := newRouter(t, NewHandler(pool))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/compute", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"compute pool is busy"}`, w.Body.String())
}
