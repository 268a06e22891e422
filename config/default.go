package config

// DefaultConfigYAML 嵌入的默认配置，外部配置文件与环境变量可逐项覆盖
var DefaultConfigYAML = []byte(`server:
  port: ":8080"
  mode: "debug"
  base_url: "http://localhost:8080"

database:
  host: "127.0.0.1"
  port: "3306"
  username: "root"
  password: "root"
  dbname: "fintrack"
  charset: "utf8mb4"

jwt:
  secret: "change-me-in-production"
  expire_hours: 72

email:
  enabled: false
  host: "smtp.example.com"
  port: 465
  username: ""
  password: ""
  from: ""
`)
