package api

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/Ptt-Alertor/bank-api/models/bank"
	"github.com/Ptt-Alertor/bank-api/models/user"
)

// Setup replaces the stores the handlers work on
func Setup(banks *bank.Store, users *user.Store) {
	bankStore = banks
	userStore = users
}

// Routes registers every API route on router
func Routes(router *httprouter.Router) {
	// health check
	router.GET("/hello", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Hello World!"}`))
	})

	// bank account apis
	router.GET("/banks", ListBanks)
	router.POST("/banks", CreateBank)
	router.GET("/banks/:account_number", GetBank)
	router.GET("/banks/:account_number/:email", GetBanksByEmail)
	router.PUT("/banks/:account_number", ReplaceBank)
	router.PATCH("/banks/:account_number", PatchBank)
	router.DELETE("/banks/:account_number", DeleteBank)
	router.PATCH("/banks/:account_number/balance", SetBalance)
	router.PUT("/banks/:account_number/deposit", Deposit)
	router.PUT("/banks/:account_number/withdraw", Withdraw)

	// user apis
	router.POST("/user", CreateUser)
	router.GET("/users", ListUsers)
	router.GET("/users/email/:email", GetUserByEmail)
}
