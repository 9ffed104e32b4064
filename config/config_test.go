package config

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := New()

	assert.NotEmpty(t, conf)
	assert.Equal(t, "mongodb://127.0.0.1:27017", conf.URL)
	assert.Equal(t, "test", conf.DatabaseName)
}

func TestNewDefaults(t *testing.T) {
	os.Unsetenv("GEOCODER_TIMEOUT")
	os.Unsetenv("JURISDICTION_RADIUS_METERS")
	os.Unsetenv("PORT")
	conf := New()

	assert.Equal(t, 10*time.Second, conf.GeocoderTimeout)
	assert.Equal(t, float64(20000), conf.JurisdictionRadiusMeters)
	assert.Equal(t, "8080", conf.Port)
}

func TestNewOverrides(t *testing.T) {
	os.Setenv("GEOCODER_TIMEOUT", "3")
	os.Setenv("JURISDICTION_RADIUS_METERS", "5000")
	defer os.Unsetenv("GEOCODER_TIMEOUT")
	defer os.Unsetenv("JURISDICTION_RADIUS_METERS")
	conf := New()

	assert.Equal(t, 3*time.Second, conf.GeocoderTimeout)
	assert.Equal(t, float64(5000), conf.JurisdictionRadiusMeters)
}

func TestErrorStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorStatus("error it borked", http.StatusBadRequest, rr, errors.New("bad request"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"Response":{"Message":"error it borked","Error":"bad request"}}`, rr.Body.String())
}

func TestErrorStatusNilError(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorStatus("nope", http.StatusForbidden, rr, nil)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"Response":{"Message":"nope","Error":""}}`, rr.Body.String())
}

func TestSetLoggerSetsDevelopmentLogger(t *testing.T) {
	l, err := setLogger("development")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestSetLoggerSetsProductionLogger(t *testing.T) {
	l, err := setLogger("production")
	assert.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.ErrorLevel))
}

func TestSetLoggerSetsLocalLogger(t *testing.T) {
	l, err := setLogger("local")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		conf    Config
		wantErr bool
	}{
		{"development with defaults", Config{Environment: "development", JWTSecret: DevJWTSecret}, false},
		{"production with dev secret", Config{Environment: "production", JWTSecret: DevJWTSecret, URL: "mongodb://db"}, true},
		{"production without db", Config{Environment: "production", JWTSecret: "s3cret"}, true},
		{"production configured", Config{Environment: "production", JWTSecret: "s3cret", URL: "mongodb://db"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.conf.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
