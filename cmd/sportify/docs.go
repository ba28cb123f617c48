package main

//go:generate swag init -g cmd/sportify/docs.go -o docs

// @title           Sportify API
// @version         1.0
// @description     Sports event listings with an admin moderation workflow.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
