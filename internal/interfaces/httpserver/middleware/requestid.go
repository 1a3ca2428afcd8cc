package middleware

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	"augeo-server/services/admin-api/internal/utils/platformerrors"
)

// HeaderRequestID is echoed back so clients can correlate error reports.
const HeaderRequestID = "X-Request-ID"

var (
	entropyOnce sync.Once
	entropy     *ulid.MonotonicEntropy
	entropyMu   sync.Mutex
)

func newEntropy() *ulid.MonotonicEntropy {
	entropyOnce.Do(func() {
		source := rand.NewSource(time.Now().UnixNano())
		entropy = ulid.Monotonic(rand.New(source), 0)
	})
	return entropy
}

func newRequestID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), newEntropy())
	return "req_" + strings.ToLower(id.String())
}

// RequestID assigns a ULID to each request and threads it through the
// context so platform errors carry it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = newRequestID()
		}
		c.Header(HeaderRequestID, id)
		ctx := platformerrors.WithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
