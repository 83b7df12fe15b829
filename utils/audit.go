package utils

import (
	"context"
	"encoding/json"
	"net"
	"strings"

	"github.com/kataras/golog"
	"github.com/kataras/iris/v12"

	"github.com/Startup925/realestate/models"
)

type AuditStore interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// Audit records an admin action. Failures are logged and never reach the caller.
func Audit(ctx iris.Context, store AuditStore, action, resourceType, resourceID string, before interface{}, after interface{}) {
	var beforeStr, afterStr string
	if before != nil {
		if b, err := json.Marshal(before); err == nil {
			beforeStr = string(b)
		}
	}
	if after != nil {
		if a, err := json.Marshal(after); err == nil {
			afterStr = string(a)
		}
	}
	var actorID string
	if user := CurrentUser(ctx); user != nil {
		actorID = user.ID
	}
	log := models.AuditLog{ActorID: actorID, Action: action, ResourceType: resourceType, ResourceID: resourceID, BeforeJSON: beforeStr, AfterJSON: afterStr, IPAddress: clientIP(ctx)}
	if err := store.CreateAuditLog(ctx.Request().Context(), &log); err != nil {
		golog.Warnf("audit %s %s/%s: %v", action, resourceType, resourceID, err)
	}
}

func clientIP(ctx iris.Context) string {
	if ip := ctx.GetHeader("X-Forwarded-For"); ip != "" {
		return strings.TrimSpace(strings.Split(ip, ",")[0])
	}
	addr := ctx.RemoteAddr()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
