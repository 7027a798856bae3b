// Command adminkey prints the bcrypt hash of an admin API key for the
// ADMIN_KEY_HASH environment variable:
//
//	adminkey <key>
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/driving-licence-admin/internal/utils"
)

func main() {
	if len(os.Args) != 2 || os.Args[1] == "" {
		log.Fatal("usage: adminkey <key>")
	}
	hash, err := utils.HashAdminKey(os.Args[1], bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash failed: %v", err)
	}
	fmt.Println(hash)
}
