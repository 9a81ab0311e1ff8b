package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EleonoraVis1/Web-Application-Development-Final-Project/internal/model"
)

func TestVoteHandler_HandleCast(t *testing.T) {
	env := newTestEnv(t)
	runnerID := env.createRunner("Eliud Kipchoge")
	token := env.registerUser("alice")

	t.Run("first vote is recorded", func(t *testing.T) {
		rr := env.do(http.MethodPost, "/api/vote", `{"runner":"`+runnerID+`"}`, token)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var vote model.Vote
		decodeBody(t, rr, &vote)
		assert.Equal(t, runnerID, vote.RunnerID)
		assert.NotEmpty(t, vote.ID)
	})

	t.Run("second vote is rejected", func(t *testing.T) {
		rr := env.do(http.MethodPost, "/api/vote", `{"runner":"`+runnerID+`"}`, token)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var res struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		decodeBody(t, rr, &res)
		assert.Equal(t, "conflict", res.Error)
		assert.Equal(t, "You have already voted.", res.Message)
	})

	t.Run("unknown runner is a 404", func(t *testing.T) {
		token := env.registerUser("bob")
		rr := env.do(http.MethodPost, "/api/vote", `{"runner":"no-such-runner"}`, token)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("anonymous vote is a 401", func(t *testing.T) {
		rr := env.do(http.MethodPost, "/api/vote", `{"runner":"`+runnerID+`"}`, "")

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestVoteHandler_HandleTally(t *testing.T) {
	env := newTestEnv(t)
	first := env.createRunner("Eliud Kipchoge")
	second := env.createRunner("Usain Bolt")

	for _, username := range []string{"alice", "bob", "carol"} {
		token := env.registerUser(username)
		rr := env.do(http.MethodPost, "/api/vote", `{"runner":"`+first+`"}`, token)
		assert.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := env.do(http.MethodGet, "/api/vote/results", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var tally map[string]int
	decodeBody(t, rr, &tally)
	assert.Equal(t, 3, tally[first])
	// Runners without votes do not appear in the tally.
	_, present := tally[second]
	assert.False(t, present)
}
