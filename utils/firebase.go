// File: utils/firebase.go
package utils

import (
	"context"
	"log"

	"studyon/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var (
	FCMClient  *messaging.Client
	AuthClient *auth.Client
)

// FirebaseInit initializes the Firebase App, Messaging and Auth clients.
// Messaging is the push sink for proximity prompts; Auth verifies the
// ID tokens that scope favorites and submissions to a user.
func FirebaseInit() {
	ctx := context.Background()
	opt := option.WithCredentialsFile(config.AppConfig.FirebaseCredentialsFile)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		log.Fatalf("firebase: error initializing app: %v", err)
	}

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Messaging client: %v", err)
	}
	FCMClient = msgClient

	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Auth client: %v", err)
	}
	AuthClient = authClient
}
