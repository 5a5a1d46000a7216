package domain

import "strings"

// RedirectTarget is the gate's routing decision: a same-origin relative
// path the boundary adapter turns into an HTTP redirect.
type RedirectTarget struct {
	Path string
}

// Well-known destinations.
const (
	signInPath         = "/auth/sign-in"
	onboardingPath     = "/complete?first=1"
	dashboardFirstPath = "/dashboard?first=1"
	dashboardPath      = "/dashboard"
)

// SignInTarget routes back to the sign-in page, optionally carrying a short
// error marker so failures are distinguishable in logs and in the UI.
func SignInTarget(errCode string) RedirectTarget {
	if errCode == "" {
		return RedirectTarget{Path: signInPath}
	}
	return RedirectTarget{Path: signInPath + "?error=" + errCode}
}

// OnboardingTarget routes a user with no first name to profile completion.
func OnboardingTarget() RedirectTarget {
	return RedirectTarget{Path: onboardingPath}
}

// DashboardFirstTarget routes a user with no assessments to the dashboard
// with the welcome marker set.
func DashboardFirstTarget() RedirectTarget {
	return RedirectTarget{Path: dashboardFirstPath}
}

// DashboardTarget is the default landing page for returning users.
func DashboardTarget() RedirectTarget {
	return RedirectTarget{Path: dashboardPath}
}

// PathTarget wraps a caller-supplied path that already passed
// SafeRedirectPath.
func PathTarget(path string) RedirectTarget {
	return RedirectTarget{Path: path}
}

// SafeRedirectPath reports whether a client-supplied redirect target may be
// honored. It admits only same-origin relative paths: the path must start
// with "/", must not start with "//" (protocol-relative escape), and must
// not point back into "/auth/" (redirect loop).
func SafeRedirectPath(path string) bool {
	if path == "" {
		return false
	}
	if !strings.HasPrefix(path, "/") {
		return false
	}
	if strings.HasPrefix(path, "//") {
		return false
	}
	if strings.HasPrefix(path, "/auth/") {
		return false
	}
	return true
}
