package httpgin

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	redisrepo "github.com/kirinyoku/tix-ledger/internal/repository/redis"
)

const idemLockTTL = 60 * time.Second

// idempotent runs do at most once per Idempotency-Key and replays the first
// successful response for repeats. Without a key or store it just runs do.
func (h *handler) idempotent(
	c *gin.Context,
	operation string,
	entityID uint64,
	status int,
	do func() (any, error),
) {
	ctx := c.Request.Context()
	idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))

	if h.idem == nil || idemKey == "" {
		resp, err := do()
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(status, resp)
		return
	}

	key := redisrepo.KeyIdem(operation, entityID, idemKey)

	replay := func() bool {
		payload, ok, _ := h.idem.GetResult(ctx, key)
		if !ok {
			return false
		}
		c.Header("Idempotency-Key", idemKey)
		c.Data(status, "application/json; charset=utf-8", []byte(payload))
		return true
	}

	if replay() {
		return
	}

	locked, err := h.idem.AcquireLock(ctx, key, idemLockTTL)
	if err != nil {
		respondErr(c, err)
		return
	}
	if !locked {
		if replay() {
			return
		}
		c.Header("Retry-After", "1")
		c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
		return
	}

	resp, err := do()
	if err != nil {
		_ = h.idem.Release(ctx, key)
		respondErr(c, err)
		return
	}

	b, err := json.Marshal(resp)
	if err != nil {
		_ = h.idem.Release(ctx, key)
		respondErr(c, err)
		return
	}
	if err := h.idem.SaveResult(ctx, key, string(b)); err != nil {
		h.log.Warn("idempotency result not saved", "key", key, "err", err)
	}

	c.Header("Idempotency-Key", idemKey)
	c.Data(status, "application/json; charset=utf-8", b)
}
