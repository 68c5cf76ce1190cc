package common

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "token"

// ConfigAllowRegistration is the configs key that gates self sign-up.
const ConfigAllowRegistration = "allow_registration"
