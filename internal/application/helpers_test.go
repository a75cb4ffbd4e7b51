package application

import (
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/bnema/tenantctl/internal/ports/mocks"
	"github.com/stretchr/testify/mock"
)

func fakeJWT(payload string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	body := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return header + "." + body + ".sig"
}

func tokenExpiringAt(subject string, expiresAt time.Time) string {
	return fakeJWT(fmt.Sprintf(`{"sub":%q,"email":"ops@example.com","role":"admin","exp":%d}`, subject, expiresAt.Unix()))
}

func fixedClock(t *testing.T, now time.Time) *mocks.MockClock {
	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(now).Maybe()
	return clock
}

func mockAnyContext() interface{} {
	return mock.Anything
}
