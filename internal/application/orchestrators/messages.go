package orchestrators

// Success messages shown as toasts.
const (
	MsgSignupSuccess       = "Account created successfully! Please log in."
	MsgLogoutSuccess       = "Logged out successfully!"
	MsgRegistrationSuccess = "Registration successful!"
	MsgEnquirySuccess      = "Enquiry submitted successfully! Our enquiry team will reach out to you very soon."
	MsgSubscribeSuccess    = "Thank you for subscribing!"
	MsgProfileUpdated      = "Profile updated successfully!"
	MsgUserDeleted         = "User deleted successfully!"
	MsgPasswordChanged     = "Password changed successfully!"
)
