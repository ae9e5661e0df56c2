package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	domainauth "github.com/target/docanalyzer-ui/internal/domain/auth"
)

func authenticated() domainauth.State {
	return domainauth.State{User: &domainauth.User{Username: "alice"}}
}

func TestDecide_AuthenticatedRenders(t *testing.T) {
	d := Decide("/dashboard", authenticated())

	assert.True(t, d.Allow)
	assert.Empty(t, d.LoginURL)
	assert.Empty(t, d.From)
}

func TestDecide_AnonymousRedirectsAndRecordsPath(t *testing.T) {
	d := Decide("/dashboard?document=7", domainauth.State{})

	assert.False(t, d.Allow)
	assert.Equal(t, "/dashboard?document=7", d.From)
	assert.Equal(t, "/login?redirect_uri=%2Fdashboard%3Fdocument%3D7", d.LoginURL)
}

func TestDecide_AnonymousOffsiteTargetIsSanitized(t *testing.T) {
	for _, requested := range []string{"https://evil.example.com/x", "//evil.example.com", "javascript:alert(1)", ""} {
		d := Decide(requested, domainauth.State{})
		assert.False(t, d.Allow)
		assert.Equal(t, "/", d.From, requested)
		assert.Equal(t, "/login", d.LoginURL, requested)
	}
}

func TestResumeTarget(t *testing.T) {
	assert.Equal(t, "/dashboard?document=3", ResumeTarget("/dashboard?document=3"))
	assert.Equal(t, LandingPath, ResumeTarget(""))
	assert.Equal(t, LandingPath, ResumeTarget("/"))
	assert.Equal(t, LandingPath, ResumeTarget("/login?redirect_uri=%2Fx"))
	assert.Equal(t, LandingPath, ResumeTarget("https://evil.example.com/dashboard"))
}

func TestSafeRedirectFromURL(t *testing.T) {
	assert.Equal(t, "/dashboard?page=2", SafeRedirectFromURL("https://example.com/dashboard?page=2"))
	assert.Equal(t, "/alerts", SafeRedirectFromURL("/alerts"))
	assert.Empty(t, SafeRedirectFromURL("//evil.example.com/steal"))
	assert.Empty(t, SafeRedirectFromURL(""))
	assert.Empty(t, SafeRedirectFromURL("://bad"))
}
