package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

var ownFlags = []string{"-a", "-g", "-s", "-t", "-H", "-b", "-d", "-r", "-T", "-B", "-R", "-e", "-l"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   REST bind address (e.g., ":8080")
//	-g string   gRPC bind address (e.g., ":50051")
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes (only applied when given)
//	-H string   password hash algorithm (bcrypt, argon2id)
//	-b string   store backend (memory, dynamodb, postgres, redis, s3)
//	-d string   PostgreSQL DSN
//	-r string   Redis address
//	-T string   DynamoDB table name
//	-B string   S3 bucket name
//	-R string   AWS region
//	-e string   AWS endpoint override
//	-l string   log level
//
// args is filtered with flagx.FilterArgs first so that flags owned by other
// layers (-c) do not trip the parser.
func parseFlags(config *Config, args []string) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run REST server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run gRPC server")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenTTL := fs.Int("t", int(config.TokenTTL.Minutes()), "token validity (in minutes)")
	fs.StringVar(&config.HashAlgorithm, "H", config.HashAlgorithm, "password hash algorithm")
	fs.StringVar(&config.StoreBackend, "b", config.StoreBackend, "user store backend")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.DynamoDBTable, "T", config.DynamoDBTable, "DynamoDB table")
	fs.StringVar(&config.S3Bucket, "B", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.AWSRegion, "R", config.AWSRegion, "AWS region")
	fs.StringVar(&config.AWSEndpoint, "e", config.AWSEndpoint, "AWS endpoint override")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, ownFlags)); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenTTL = time.Duration(*tokenTTL) * time.Minute
		}
	})
}
