package email

import "fmt"

// RegistrationEmailTemplate generates HTML asking the user to confirm registration
func RegistrationEmailTemplate(confirmURL string) string {
	return fmt.Sprintf(`<h1>Thank you for your registration</h1>
<p>To finish registration please follow the link below:
    <a href="%s">complete registration</a>
</p>`, confirmURL)
}

// PasswordRecoveryEmailTemplate generates HTML with a password recovery link
func PasswordRecoveryEmailTemplate(recoveryURL string) string {
	return fmt.Sprintf(`<h1>Password recovery</h1>
<p>To finish password recovery please follow the link below:
    <a href="%s">recovery password</a>
</p>`, recoveryURL)
}
