// Package cli implements the gophauth command-line client.
//
// Each subcommand opens one gRPC connection, performs a single call and
// prints the result:
//
//	gophauth [--addr host:port] [--config file.json] register --name N --email E [--role ADMIN]
//	gophauth login --email E
//	gophauth profile --token T
//	gophauth admin --token T
//
// Passwords are never taken from flags. They are read without echo when
// stdin is a terminal and as a single line otherwise. The token for
// profile and admin may also come from GOPHAUTH_TOKEN.
package cli
