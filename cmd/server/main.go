package main

import "apicrete/internal/app"

// @title           APICrete
// @version         1.0
// @description     Регистрация пользователей с подтверждением email по OTP-коду.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
