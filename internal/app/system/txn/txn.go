// Package txn wraps multi-document MongoDB transactions with a
// graceful fallback for deployments that cannot run them.
//
// Enrollment mutations touch the groups, students, and group_history
// collections in one logical step. On replica sets we run that step in
// a real transaction; on standalone servers (common in dev and small
// installs) transactions are rejected by the server, so the step runs
// without one and relies on per-document atomicity alone.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// WithTransaction runs fn inside a multi-document transaction, passing
// it the session context. If the server does not support transactions,
// fn is run once directly with the original context.
func WithTransaction(ctx context.Context, client *mongo.Client, fn func(ctx context.Context) error) error {
	sess, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			zap.L().Debug("transactions unsupported; running without one", zap.Error(err))
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		zap.L().Debug("transactions unsupported; running without one", zap.Error(err))
		return fn(ctx)
	}
	return err
}

// Server error codes that indicate transactions are unavailable:
// 20 IllegalOperation (standalone), 51 and 263 variants seen from
// DocumentDB and older servers.
var notSupportedCodes = map[int32]bool{20: true, 51: true, 263: true}

// keyword pairs that show up in driver/server messages when sessions or
// transactions are unavailable, for errors that are not CommandErrors
var notSupportedHints = [][2]string{
	{"transaction", "replica set"},
	{"transaction", "session"},
	{"session", "not supported"},
	{"illegal operation", "transaction"},
}

// IsNotSupported reports whether err means the deployment cannot run
// multi-document transactions (as opposed to the transaction failing).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		return notSupportedCodes[ce.Code]
	}

	msg := strings.ToLower(err.Error())
	for _, hint := range notSupportedHints {
		if strings.Contains(msg, hint[0]) && strings.Contains(msg, hint[1]) {
			return true
		}
	}
	return false
}
