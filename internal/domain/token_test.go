package domain

import (
	"testing"
	"time"
)

func TestAccessToken_Expired(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	if (AccessToken{Value: "t"}).Expired(now) {
		t.Error("token without lifetime should never expire")
	}
	if (AccessToken{Value: "t", ExpiresAt: now.Add(time.Minute)}).Expired(now) {
		t.Error("token expiring in the future reported expired")
	}
	if !(AccessToken{Value: "t", ExpiresAt: now}).Expired(now) {
		t.Error("token expiring now should be expired")
	}
}
