package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/tawhidislam22/business-management/internal/client"
	"github.com/tawhidislam22/business-management/internal/config"
	"github.com/tawhidislam22/business-management/internal/models"
	"github.com/tawhidislam22/business-management/internal/session"
)

// repl runs the interactive shell loop for browsing assets and driving
// the request workflow.
func repl(mgr *session.Manager, api *client.Client, wf *client.Workflow) {
	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	for {
		fmt.Print("assets> ")
		if !scanner.Scan() {
			break
		}
		args := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Commands: help, whoami, assets, requests, request <assetId>, approve <id>, reject <id> <reason...>, cancel <id>, return <id>, team, logout, exit")
		case "whoami":
			sess := mgr.Snapshot()
			if sess.User == nil {
				fmt.Println("not signed in")
				continue
			}
			role := "unknown"
			if sess.Role != nil {
				role = string(*sess.Role)
			}
			fmt.Printf("%s <%s> role=%s\n", sess.User.DisplayName, sess.User.Email, role)
		case "assets":
			var list struct {
				Assets []models.Asset `json:"assets"`
			}
			if err := api.Get(ctx, "/assets", &list); err != nil {
				fmt.Println("error:", err)
				continue
			}
			for _, a := range list.Assets {
				fmt.Printf("#%d %s (%s) %d available\n", a.ID, a.Name, a.Type, a.Quantity)
			}
		case "requests":
			requests, err := wf.Refresh(ctx, client.RequestFilters{})
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			for _, r := range requests {
				fmt.Printf("#%d %s [%s] by %s\n", r.ID, r.AssetName, r.Status, r.RequesterEmail)
			}
		case "request":
			if len(args) < 2 {
				fmt.Println("Usage: request <assetId>")
				continue
			}
			id, _ := strconv.Atoi(args[1])
			var list struct {
				Assets []models.Asset `json:"assets"`
			}
			if err := api.Get(ctx, "/assets?limit=100", &list); err != nil {
				fmt.Println("error:", err)
				continue
			}
			var asset *models.Asset
			for i := range list.Assets {
				if list.Assets[i].ID == uint(id) {
					asset = &list.Assets[i]
					break
				}
			}
			if asset == nil {
				fmt.Printf("asset #%d not found\n", id)
				continue
			}
			created, err := wf.RequestAsset(ctx, *asset, "")
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			fmt.Printf("request #%d created (%s)\n", created.ID, created.Status)
		case "approve", "cancel", "return":
			if len(args) < 2 {
				fmt.Printf("Usage: %s <id>\n", args[0])
				continue
			}
			id, _ := strconv.Atoi(args[1])
			updated, err := applyTransition(ctx, wf, args[0], uint(id))
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			fmt.Printf("request #%d is now %s\n", updated.ID, updated.Status)
		case "reject":
			if len(args) < 3 {
				fmt.Println("Usage: reject <id> <reason...>")
				continue
			}
			id, _ := strconv.Atoi(args[1])
			updated, err := wf.Reject(ctx, uint(id), strings.Join(args[2:], " "))
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			fmt.Printf("request #%d is now %s\n", updated.ID, updated.Status)
		case "team":
			var list struct {
				Employees []models.User `json:"employees"`
			}
			if err := api.Get(ctx, "/employees", &list); err != nil {
				fmt.Println("error:", err)
				continue
			}
			for _, e := range list.Employees {
				fmt.Printf("%s <%s>\n", e.Name, e.Email)
			}
		case "logout":
			mgr.SignOut(ctx)
			fmt.Println("signed out")
			return
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// applyTransition finds the request in the current list so transitions
// are validated against its real state before any call goes out.
func applyTransition(ctx context.Context, wf *client.Workflow, action string, id uint) (models.AssetRequest, error) {
	requests, err := wf.Refresh(ctx, client.RequestFilters{})
	if err != nil {
		return models.AssetRequest{}, err
	}
	for _, r := range requests {
		if r.ID != id {
			continue
		}
		switch action {
		case "approve":
			return wf.Approve(ctx, id)
		case "cancel":
			return wf.Cancel(ctx, r)
		case "return":
			return wf.Return(ctx, r)
		}
	}
	return models.AssetRequest{}, fmt.Errorf("request #%d not found", id)
}

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg := config.LoadClient()

	store, err := session.NewCredentialStore(cfg.StateDir)
	if err != nil {
		logger.Fatal("failed to open credential store", zap.Error(err))
	}

	api := client.New(cfg.APIBaseURL, store, logger)
	provider := client.NewIdentityProvider(api)
	roles := client.NewRoleResolver(api)

	mgr := session.NewManager(provider, api, roles, store, logger)
	defer mgr.Close()

	api.SetAuthFailureHandler(func(ctx context.Context) {
		fmt.Println("session expired, signed out")
		mgr.ForceSignOut(ctx)
	})

	wf := client.NewWorkflow(api)

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("email: ")
	email, _ := reader.ReadString('\n')
	fmt.Print("password: ")
	password, _ := reader.ReadString('\n')

	ctx := context.Background()
	if err := mgr.SignInWithPassword(ctx, strings.TrimSpace(email), strings.TrimSpace(password)); err != nil {
		logger.Fatal("sign-in failed", zap.Error(err))
	}

	repl(mgr, api, wf)
}
