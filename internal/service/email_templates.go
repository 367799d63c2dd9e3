package service

import "fmt"

const otpEmailStyle = `
  body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
  .container { max-width: 600px; margin: 0 auto; padding: 20px; }
  .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
  .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
  .otp-box { background: white; padding: 20px; border-radius: 8px; text-align: center; margin: 20px 0; border: 2px solid #667eea; }
  .otp-code { font-size: 32px; font-weight: bold; color: #667eea; letter-spacing: 5px; }
  .footer { text-align: center; margin-top: 20px; color: #666; font-size: 12px; }
`

func otpEmailBody(heading, intro, code, extra, appName string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><style>%s</style></head>
<body>
  <div class="container">
    <div class="header"><h1>%s</h1></div>
    <div class="content">
      <p>%s</p>
      <div class="otp-box">
        <p style="margin: 0; color: #666; font-size: 14px;">Your verification code is:</p>
        <div class="otp-code">%s</div>
      </div>
      <p><strong>This code will expire in 5 minutes.</strong></p>
      %s
    </div>
    <div class="footer"><p>&copy; %s. All rights reserved.</p></div>
  </div>
</body>
</html>`, otpEmailStyle, heading, intro, code, extra, appName)
}

func accountCreationTemplate(appName, code string) (string, string) {
	subject := "Verify Your Email - Account Creation"
	body := otpEmailBody(
		fmt.Sprintf("Welcome to %s!", appName),
		"Thank you for creating an account with us. To complete your registration, please verify your email address using the code below:",
		code,
		`<p style="color: #666; font-size: 14px;">If you didn't create an account with us, please ignore this email.</p>`,
		appName,
	)
	return subject, body
}

func loginVerificationTemplate(appName, code, email string) (string, string) {
	subject := "Login Verification Code"
	body := otpEmailBody(
		"Login Verification",
		fmt.Sprintf("Someone is trying to log in to your %s account (<strong>%s</strong>).", appName, email),
		code,
		fmt.Sprintf(`<p style="color: #666; font-size: 14px;">If you didn't attempt to log in, please ignore this email or contact support. Never share this code with anyone. %s staff will never ask for it.</p>`, appName),
		appName,
	)
	return subject, body
}

func passwordResetTemplate(appName, code string) (string, string) {
	subject := "Reset Your Password"
	body := otpEmailBody(
		"Password Reset",
		"You requested to reset your password. Use the code below to continue:",
		code,
		`<p style="color: #666; font-size: 14px;">If you didn't request a password reset, you can safely ignore this email. Your password won't be changed.</p>`,
		appName,
	)
	return subject, body
}
