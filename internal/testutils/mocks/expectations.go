// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	llmmock "github.com/KirkDiggler/rpg-director/internal/clients/llm/mock"
	"github.com/KirkDiggler/rpg-director/internal/orchestrators/turn"
	turnmock "github.com/KirkDiggler/rpg-director/internal/orchestrators/turn/mock"
	"github.com/KirkDiggler/rpg-director/internal/store"
)

// ExpectNarrative sets up one model reply
func ExpectNarrative(mockText *llmmock.MockTextGenerator, raw string) *gomock.Call {
	return mockText.EXPECT().
		GenerateTurn(gomock.Any(), gomock.Any()).
		Return(raw, nil)
}

// ExpectImage sets up one image reply for any prompt
func ExpectImage(mockImages *llmmock.MockImageGenerator, url string) *gomock.Call {
	return mockImages.EXPECT().
		GenerateImage(gomock.Any(), gomock.Any()).
		Return(url, nil)
}

// ExpectSerialize sets up the live session to serialize as doc
func ExpectSerialize(ctx context.Context, mockGame *turnmock.MockService, doc []byte, st *store.State) *gomock.Call {
	return mockGame.EXPECT().
		SerializeState(ctx, &turn.SerializeStateInput{}).
		Return(&turn.SerializeStateOutput{Document: doc, State: st}, nil)
}

// ExpectLoad sets up the live session to accept doc and become st
func ExpectLoad(ctx context.Context, mockGame *turnmock.MockService, doc []byte, st *store.State) *gomock.Call {
	return mockGame.EXPECT().
		LoadState(ctx, &turn.LoadStateInput{Document: doc}).
		Return(&turn.LoadStateOutput{State: st}, nil)
}
