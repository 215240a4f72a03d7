// Package database opens connections to the databases journal storage can use.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const mongoAppName = "cura-journal"

// ConnectMongo builds one client for uri and pings the primary through Retry,
// so a slow-starting server is waited for without reconnecting each attempt.
// timeout bounds server selection and each ping. On failure the client is
// disconnected; otherwise the caller owns it and must Disconnect.
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration, attempts int, backoff time.Duration) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetAppName(mongoAppName).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout)
	// Connect does not dial; reachability is established by the ping below.
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo client: %w", err)
	}

	err = Retry(ctx, "MongoDB", attempts, backoff, func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return client.Ping(pingCtx, readpref.Primary())
	})
	if err != nil {
		dctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_ = client.Disconnect(dctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}
