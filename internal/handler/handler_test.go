package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/0PeterAdel/Money-Management/internal/auth"
	"github.com/0PeterAdel/Money-Management/internal/config"
	"github.com/0PeterAdel/Money-Management/internal/handler"
	"github.com/0PeterAdel/Money-Management/internal/router"
	"github.com/0PeterAdel/Money-Management/internal/service"
	"github.com/0PeterAdel/Money-Management/internal/storage/sqlite"
)

// setupTestServer spins up the full HTTP stack over a temp SQLite database.
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "ledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	users := service.NewUserService(store)
	groups := service.NewGroupService(store)
	ledger := service.NewLedgerService(store)
	actions := service.NewActionService(store, ledger)
	settlements := service.NewSettlementService(store)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	h := handler.New(users, groups, ledger, actions, settlements, jwtManager)
	cfg := &config.Config{GinMode: gin.TestMode}

	server := httptest.NewServer(router.Setup(cfg, h, jwtManager))
	t.Cleanup(server.Close)
	return server
}

// doJSON sends a JSON request and decodes the JSON response into a map.
func doJSON(t *testing.T, server *httptest.Server, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}

	req, err := http.NewRequest(method, server.URL+path, &buf)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		decoded = nil
	}
	return resp.StatusCode, decoded
}

// registerAndLogin creates an account and returns its ID and session token.
func registerAndLogin(t *testing.T, server *httptest.Server, name string) (string, string) {
	t.Helper()

	status, body := doJSON(t, server, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": name, "password": "long-enough-password",
	})
	if status != http.StatusCreated {
		t.Fatalf("Register %s: status %d, body %v", name, status, body)
	}
	userID, _ := body["id"].(string)

	status, body = doJSON(t, server, http.MethodPost, "/api/auth/login", "", gin.H{
		"name": name, "password": "long-enough-password",
	})
	if status != http.StatusOK {
		t.Fatalf("Login %s: status %d, body %v", name, status, body)
	}
	token, _ := body["token"].(string)
	if userID == "" || token == "" {
		t.Fatalf("Missing id or token for %s: %v", name, body)
	}
	return userID, token
}

func TestAuthRequired(t *testing.T) {
	server := setupTestServer(t)

	status, _ := doJSON(t, server, http.MethodGet, "/api/users", "", nil)
	if status != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", status)
	}

	status, _ = doJSON(t, server, http.MethodGet, "/api/users", "garbage-token", nil)
	if status != http.StatusUnauthorized {
		t.Errorf("Expected 401 with bad token, got %d", status)
	}

	status, _ = doJSON(t, server, http.MethodGet, "/healthz", "", nil)
	if status != http.StatusOK {
		t.Errorf("Expected 200 for health check, got %d", status)
	}
}

func TestExpenseVotingFlow(t *testing.T) {
	server := setupTestServer(t)

	aliceID, aliceToken := registerAndLogin(t, server, "Alice")
	bobID, bobToken := registerAndLogin(t, server, "Bob")

	// Alice creates the group and pulls Bob in.
	status, body := doJSON(t, server, http.MethodPost, "/api/groups", aliceToken, gin.H{
		"name": "Flat",
	})
	if status != http.StatusCreated {
		t.Fatalf("CreateGroup: status %d, body %v", status, body)
	}
	groupID := body["id"].(string)

	status, body = doJSON(t, server, http.MethodPost,
		fmt.Sprintf("/api/groups/%s/members/%s", groupID, bobID), aliceToken, nil)
	if status != http.StatusOK {
		t.Fatalf("AddMember: status %d, body %v", status, body)
	}

	// Alice proposes a shared dinner she paid for.
	status, body = doJSON(t, server, http.MethodPost, "/api/expenses", aliceToken, gin.H{
		"description":     "Dinner",
		"total_amount":    20,
		"group_id":        groupID,
		"participant_ids": []string{aliceID, bobID},
		"category_name":   "Food",
		"payer_id":        aliceID,
	})
	if status != http.StatusCreated {
		t.Fatalf("ProposeExpense: status %d, body %v", status, body)
	}
	actionID := body["id"].(string)
	if body["status"] != "PENDING" {
		t.Fatalf("Expected PENDING proposal, got %v", body["status"])
	}

	// Bob's approval tips 2/2 over the majority.
	status, body = doJSON(t, server, http.MethodPost,
		"/api/actions/"+actionID+"/vote", bobToken, gin.H{"approve": true})
	if status != http.StatusOK {
		t.Fatalf("CastVote: status %d, body %v", status, body)
	}
	if body["status"] != "CONFIRMED" {
		t.Fatalf("Expected CONFIRMED after vote, got %v", body["status"])
	}

	// Voting twice is a conflict.
	status, _ = doJSON(t, server, http.MethodPost,
		"/api/actions/"+actionID+"/vote", bobToken, gin.H{"approve": false})
	if status != http.StatusConflict {
		t.Errorf("Expected 409 on double vote, got %d", status)
	}

	// The confirmed expense left Bob owing half.
	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/debts", nil)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+bobToken)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("ListDebts failed: %v", err)
	}
	defer resp.Body.Close()

	var debts []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&debts); err != nil {
		t.Fatalf("Failed to decode debts: %v", err)
	}
	if len(debts) != 1 {
		t.Fatalf("Expected 1 debt, got %d", len(debts))
	}
	debt := debts[0]
	if debt["debtor_id"] != bobID || debt["creditor_id"] != aliceID {
		t.Errorf("Unexpected debt parties: %v", debt)
	}
	if debt["remaining_amount"].(float64) != 10 {
		t.Errorf("Expected remaining 10, got %v", debt["remaining_amount"])
	}
}

func TestWalletEndpoints(t *testing.T) {
	server := setupTestServer(t)

	aliceID, aliceToken := registerAndLogin(t, server, "Alice")

	status, body := doJSON(t, server, http.MethodPost, "/api/groups", aliceToken, gin.H{
		"name": "Solo",
	})
	if status != http.StatusCreated {
		t.Fatalf("CreateGroup: status %d, body %v", status, body)
	}
	groupID := body["id"].(string)

	// Sole-member deposit proposal confirms in the same call.
	status, body = doJSON(t, server, http.MethodPost,
		"/api/groups/"+groupID+"/wallet/deposits", aliceToken, gin.H{
			"group_id": groupID, "user_id": aliceID, "amount": 100,
		})
	if status != http.StatusCreated {
		t.Fatalf("ProposeDeposit: status %d, body %v", status, body)
	}
	if body["status"] != "CONFIRMED" {
		t.Fatalf("Expected auto-confirmed deposit, got %v", body["status"])
	}

	// Withdrawal is credential-gated.
	status, _ = doJSON(t, server, http.MethodPost,
		"/api/groups/"+groupID+"/wallet/withdraw", aliceToken, gin.H{
			"password": "wrong-password", "amount": 10,
		})
	if status != http.StatusUnauthorized {
		t.Errorf("Expected 401 for wrong password, got %d", status)
	}

	status, body = doJSON(t, server, http.MethodPost,
		"/api/groups/"+groupID+"/wallet/withdraw", aliceToken, gin.H{
			"password": "long-enough-password", "amount": 30,
		})
	if status != http.StatusOK {
		t.Fatalf("Withdraw: status %d, body %v", status, body)
	}

	status, body = doJSON(t, server, http.MethodGet,
		"/api/groups/"+groupID+"/wallet", aliceToken, nil)
	if status != http.StatusOK {
		t.Fatalf("WalletBalance: status %d, body %v", status, body)
	}
	if body["total_wallet_balance"].(float64) != 70 {
		t.Errorf("Expected total 70, got %v", body["total_wallet_balance"])
	}
}
