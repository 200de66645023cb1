package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/akosarev/taskvault/internal/common"
)

// getPassword is a test seam for GetPassword.
var getPassword = GetPassword

func (a *App) promptCredentials() (string, []byte, error) {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return "", nil, err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return "", nil, err
	}

	return email, password, nil
}

func (a *App) Register(ctx context.Context) {
	email, password, err := a.promptCredentials()
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	defer common.WipeByteArray(password)

	user, err := a.api.Register(ctx, email, password)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	a.userEmail = user.Email
	fmt.Println("Registered and logged in as", user.Email)
}

func (a *App) Login(ctx context.Context) {
	email, password, err := a.promptCredentials()
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	defer common.WipeByteArray(password)

	user, err := a.api.Login(ctx, email, password)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	a.userEmail = user.Email
	fmt.Println("Logged in as", user.Email)
}

func (a *App) Logout(ctx context.Context) {
	if err := a.api.Logout(ctx); err != nil {
		fmt.Println(err.Error())
		return
	}
	a.userEmail = ""
	fmt.Println("Logged out")
}
