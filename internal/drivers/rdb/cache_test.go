package rdb

import (
	"context"
	"errors"
	"log"
	"testing"
	"time"
)

func TestGetItems(t *testing.T) {

	validCallable := func() (int, error) { return 1, nil }
	errorCallable := func() (int, error) { return 0, errors.New("test") }

	errorRdb, err := New(testCfg)
	if err != nil {
		log.Fatalf("failed to create Redis client; %v", err)
	}

	// Close this Redis client so we can use it
	// to force an error on GET/SET.
	if err = errorRdb.Client.Close(); err != nil {
		log.Fatalf("failed to close the Redis client; %v", err)
	}

	tests := []struct {
		name     string
		cached   bool
		ctx      context.Context
		rdb      *Service
		callable func() (int, error)
		wantErr  bool
	}{
		{"no context", true, noCtx, testRdb, validCallable, true},
		{"error rdb, error callable", true, baseCtx, errorRdb, errorCallable, true},
		{"error rdb, valid callable", true, baseCtx, errorRdb, validCallable, false},
		{"error callable", true, baseCtx, testRdb, errorCallable, true},
		{"valid callable", true, baseCtx, testRdb, validCallable, false},
		{"not cached, valid callable", false, baseCtx, testRdb, validCallable, false},
		{"nil rdb, valid callable", true, baseCtx, nil, validCallable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GetItems(tt.cached, tt.ctx, tt.rdb, tt.name, time.Minute, tt.callable)
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Errorf("got error = %v, want error = %t", err, tt.wantErr)
			}

			// Run the func again to fetch from cache
			_, err = GetItems(tt.cached, tt.ctx, tt.rdb, tt.name, time.Minute, tt.callable)
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Errorf("got error = %v, want error = %t", err, tt.wantErr)
			}
		})
	}
}

func TestGetItemsHitsCache(t *testing.T) {

	calls := 0
	callable := func() (int, error) {
		calls++
		return 42, nil
	}

	for range 3 {
		got, err := GetItems(true, baseCtx, testRdb, "hits_cache", time.Minute, callable)
		if err != nil {
			t.Fatalf("got error = %v, want nil", err)
		}
		if got != 42 {
			t.Errorf("got %d, want %d", got, 42)
		}
	}

	if calls != 1 {
		t.Errorf("got calls = %d, want %d", calls, 1)
	}

	// Expired cache goes back to the source
	testServer.FastForward(2 * time.Minute)
	if _, err := GetItems(true, baseCtx, testRdb, "hits_cache", time.Minute, callable); err != nil {
		t.Fatalf("got error = %v, want nil", err)
	}

	if calls != 2 {
		t.Errorf("got calls = %d, want %d", calls, 2)
	}
}
