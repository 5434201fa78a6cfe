package utils

//run redis
//docker run -p 6379:6379 -d redis

//swagger init
//swag init -g cmd/api/main.go --parseDependency --parseInternal --dir ./ --output ./cmd/api/docs
