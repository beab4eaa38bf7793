package constants

// LoginError is a negative LoginReply code.
type LoginError int32

const (
	LoginAuthenticationError LoginError = -1
	LoginUpdateNeeded        LoginError = -2
	LoginRestricted          LoginError = -3
	LoginNotActivated        LoginError = -4
	LoginServerError         LoginError = -5
	LoginNeedSupporter       LoginError = -6
	LoginPasswordReset       LoginError = -7
	LoginVerificationNeeded  LoginError = -8
)

var loginErrorDescriptions = map[LoginError]string{
	LoginAuthenticationError: "Authentication failed. Please check your username/password!",
	LoginUpdateNeeded:        "It seems like this version of osu! is too old. Please check for any updates!",
	LoginRestricted:          "You are banned.",
	LoginNotActivated:        "Your account was either restricted or is not activated.",
	LoginServerError:         "A server error occured.",
	LoginNeedSupporter:       "You need to be a supporter to use tourney clients.",
	LoginPasswordReset:       "Your account password has been reset.",
	LoginVerificationNeeded:  "",
}

// Error makes a rejection code usable as a Go error.
func (e LoginError) Error() string {
	return "login rejected: " + e.String()
}

// Description returns the user-facing message for the error code.
func (e LoginError) Description() string {
	return loginErrorDescriptions[e]
}

func (e LoginError) String() string {
	switch e {
	case LoginAuthenticationError:
		return "AUTHENTICATION_ERROR"
	case LoginUpdateNeeded:
		return "UPDATE_NEEDED"
	case LoginRestricted:
		return "RESTRICTED"
	case LoginNotActivated:
		return "NOT_ACTIVATED"
	case LoginServerError:
		return "SERVER_ERROR"
	case LoginNeedSupporter:
		return "NEED_SUPPORTER"
	case LoginPasswordReset:
		return "PASSWORD_RESET"
	case LoginVerificationNeeded:
		return "VERIFICATION_NEEDED"
	}
	return "UNKNOWN"
}
