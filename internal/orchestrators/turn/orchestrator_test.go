package turn_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-director/internal/clients/llm"
	llmmock "github.com/KirkDiggler/rpg-director/internal/clients/llm/mock"
	"github.com/KirkDiggler/rpg-director/internal/entities"
	"github.com/KirkDiggler/rpg-director/internal/errors"
	"github.com/KirkDiggler/rpg-director/internal/metrics"
	"github.com/KirkDiggler/rpg-director/internal/orchestrators/turn"
	"github.com/KirkDiggler/rpg-director/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-director/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-director/internal/store"
	"github.com/KirkDiggler/rpg-director/internal/testutils"
	"github.com/KirkDiggler/rpg-director/internal/testutils/mocks"
)

func TestMain(m *testing.M) {
	// genai links opencensus, whose stats worker starts in init and never stops
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

var t0 = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockText     *llmmock.MockTextGenerator
	mockImages   *llmmock.MockImageGenerator
	store        *store.Store
	ids          *idgen.Monotonic
	registry     *prometheus.Registry
	orchestrator turn.Service
	ctx          context.Context
	baseID       int64
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockText = llmmock.NewMockTextGenerator(s.ctrl)
	s.mockImages = llmmock.NewMockImageGenerator(s.ctrl)
	s.ctx = context.Background()

	s.store = store.New(testutils.CreateTestPlayingState())

	s.ids = idgen.NewMonotonic(clock.NewFixed(t0))
	s.baseID = t0.UnixMilli()
	s.registry = prometheus.NewRegistry()

	o, err := turn.NewOrchestrator(&turn.Config{
		Store:   s.store,
		Text:    s.mockText,
		Images:  s.mockImages,
		IDs:     s.ids,
		Clock:   clock.NewFixed(t0),
		Metrics: metrics.New(s.registry),
	})
	s.Require().NoError(err)
	s.orchestrator = o
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) setImageMode(mode entities.ImageMode) {
	s.store.Apply(func(st *store.State) {
		st.Settings.ImageMode = mode
	})
}

func (s *OrchestratorTestSuite) expectResponse(raw string) {
	mocks.ExpectNarrative(s.mockText, raw)
}

func (s *OrchestratorTestSuite) submit(text string) *store.State {
	out, err := s.orchestrator.SubmitPlayerAction(s.ctx, &turn.SubmitPlayerActionInput{Text: text})
	s.Require().NoError(err)
	s.Require().NotNil(out)
	s.False(out.State.Game.Loading)
	return out.State
}

func (s *OrchestratorTestSuite) lastEntry(st *store.State) entities.StoryEntry {
	s.Require().NotEmpty(st.Game.StoryLog)
	return st.Game.StoryLog[len(st.Game.StoryLog)-1]
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidation() {
	_, err := turn.NewOrchestrator(nil)
	s.Error(err)

	_, err = turn.NewOrchestrator(&turn.Config{Store: s.store})
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestSkillAndWorldEventScenario() {
	s.setImageMode(entities.ImageModeNone)

	s.mockText.EXPECT().
		GenerateTurn(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *llm.TurnRequest) (string, error) {
			s.Equal("I nod to the guard", req.PlayerAction)
			s.Equal("Mira", req.Character.Name)
			s.Equal(entities.TextEngineGemini, req.Engine)
			return "She nods. [update-skill]Perception|65[/update-skill][log-world-event]The guard noticed her.[/log-world-event]", nil
		})

	st := s.submit("I nod to the guard")

	s.Require().Len(st.Game.StoryLog, 2)
	s.Equal(entities.StoryEntry{ID: s.baseID, Kind: entities.EntryPlayer, Text: "I nod to the guard"}, st.Game.StoryLog[0])

	narrative := st.Game.StoryLog[1]
	s.Equal(entities.EntryNarrative, narrative.Kind)
	s.Equal("She nods.", narrative.Text)
	s.Empty(narrative.ImageURL)
	s.Greater(narrative.ID, st.Game.StoryLog[0].ID)

	s.Equal([]entities.Skill{{Name: "Perception", Value: 65}}, st.Character.Skills)

	s.Require().Len(st.Game.Timeline, 1)
	s.Equal("The guard noticed her.", st.Game.Timeline[0].Description)
	s.Empty(st.Game.Timeline[0].ImageURL)
	s.Greater(st.Game.Timeline[0].ID, st.Game.StoryLog[0].ID)
	s.Less(st.Game.Timeline[0].ID, narrative.ID)

	s.Empty(st.ImagePrompts)
}

func (s *OrchestratorTestSuite) TestMalformedNPCIsDropped() {
	before := s.store.Snapshot()
	s.expectResponse("The tavern is quiet. [create-npc]not json[/create-npc]")

	st := s.submit("I look around")

	s.Equal(before.World.NPCs, st.World.NPCs)
	s.Equal("The tavern is quiet.", s.lastEntry(st).Text)

	count, err := testutil.GatherAndCount(s.registry, "director_directives_total")
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *OrchestratorTestSuite) TestDirectivesApplyInDocumentOrder() {
	testCases := []struct {
		name    string
		raw     string
		wantRel int
	}{
		{
			name:    "create then relate",
			raw:     `[create-npc]{"id":"g","name":"Gull"}[/create-npc][update-npc-relation]g|150[/update-npc-relation]A gull lands.`,
			wantRel: 100,
		},
		{
			name:    "relate then create",
			raw:     `[update-npc-relation]g|150[/update-npc-relation][create-npc]{"id":"g","name":"Gull"}[/create-npc]A gull lands.`,
			wantRel: 0,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			defer s.TearDownTest()
			s.expectResponse(tc.raw)

			st := s.submit("I toss bread")

			i := st.World.FindNPC("g")
			s.Require().GreaterOrEqual(i, 0)
			s.Equal("Gull", st.World.NPCs[i].Name)
			s.Equal(tc.wantRel, st.World.NPCs[i].Relationship)
			s.Equal("A gull lands.", s.lastEntry(st).Text)
		})
	}
}

func (s *OrchestratorTestSuite) TestModelFailureCommitsFallback() {
	before := s.store.Snapshot()
	s.mockText.EXPECT().
		GenerateTurn(gomock.Any(), gomock.Any()).
		Return("", errors.Unavailable("engine down"))

	st := s.submit("I open the door")

	expected := before.Clone()
	expected.Game.StoryLog = append(expected.Game.StoryLog,
		entities.StoryEntry{ID: s.baseID, Kind: entities.EntryPlayer, Text: "I open the door"},
		entities.StoryEntry{ID: s.baseID + 1, Kind: entities.EntryNarrative, Text: llm.RemoteFallbackNarrative},
	)
	if diff := cmp.Diff(expected, st); diff != "" {
		s.Failf("unexpected state after model failure", "(-want +got):\n%s", diff)
	}
}

func (s *OrchestratorTestSuite) TestEmptyResponseUsesEngineFallback() {
	s.store.Apply(func(st *store.State) {
		st.Settings.TextEngine = entities.TextEngineLocal
	})
	s.expectResponse("   \n")

	st := s.submit("Hello?")

	s.Equal(llm.LocalFallbackNarrative, s.lastEntry(st).Text)
}

func (s *OrchestratorTestSuite) TestRejectsBlankAction() {
	_, err := s.orchestrator.SubmitPlayerAction(s.ctx, &turn.SubmitPlayerActionInput{Text: "  "})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.SubmitPlayerAction(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	s.Empty(s.store.Snapshot().Game.StoryLog)
}

func (s *OrchestratorTestSuite) TestRejectsActionDuringOnboarding() {
	s.store.Apply(func(st *store.State) {
		st.Game.Phase = entities.PhaseOnboarding
	})

	_, err := s.orchestrator.SubmitPlayerAction(s.ctx, &turn.SubmitPlayerActionInput{Text: "Hello"})
	s.True(errors.IsFailedPrecondition(err))
	s.Empty(s.store.Snapshot().Game.StoryLog)
}

func (s *OrchestratorTestSuite) TestConcurrentActionIsRejected() {
	release := make(chan struct{})
	started := make(chan struct{})
	s.mockText.EXPECT().
		GenerateTurn(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *llm.TurnRequest) (string, error) {
			close(started)
			<-release
			return "The door creaks open.", nil
		})

	done := make(chan error, 1)
	go func() {
		_, err := s.orchestrator.SubmitPlayerAction(s.ctx, &turn.SubmitPlayerActionInput{Text: "I push the door"})
		done <- err
	}()
	<-started

	s.True(s.store.Snapshot().Game.Loading)

	_, err := s.orchestrator.SubmitPlayerAction(s.ctx, &turn.SubmitPlayerActionInput{Text: "I run"})
	s.True(errors.IsFailedPrecondition(err))

	_, err = s.orchestrator.Restart(s.ctx, &turn.RestartInput{})
	s.True(errors.IsFailedPrecondition(err))

	doc, err := s.orchestrator.SerializeState(s.ctx, &turn.SerializeStateInput{})
	s.Require().NoError(err)
	_, err = s.orchestrator.LoadState(s.ctx, &turn.LoadStateInput{Document: doc.Document})
	s.True(errors.IsFailedPrecondition(err))

	close(release)
	s.Require().NoError(<-done)

	st := s.store.Snapshot()
	s.False(st.Game.Loading)
	s.Require().Len(st.Game.StoryLog, 2)
	s.Equal("I push the door", st.Game.StoryLog[0].Text)
	s.Equal("The door creaks open.", st.Game.StoryLog[1].Text)

	count, err := testutil.GatherAndCount(s.registry, "director_turns_total")
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *OrchestratorTestSuite) TestAutoPortraitAfterCharacterChange() {
	s.expectResponse("[add-item]Lantern|A brass lantern[/add-item]You take the lantern.")

	want := s.store.Snapshot().Character
	want.UpsertItem(entities.Item{Name: "Lantern", Description: "A brass lantern"})
	prompt := want.PortraitPrompt()

	s.mockImages.EXPECT().
		GenerateImage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *llm.ImageRequest) (string, error) {
			s.Equal(prompt, req.Prompt)
			s.Equal("3:4", req.Aspect)
			s.Equal(entities.DefaultSettings().ImageTheme, req.Theme)
			s.Equal(entities.ImageEngineGemini, req.Engine)
			return "data:image/jpeg;base64,cG9ydHJhaXQ=", nil
		})

	st := s.submit("I pick up the lantern")

	s.Equal("data:image/jpeg;base64,cG9ydHJhaXQ=", st.Character.ImageURL)
	s.Empty(st.Character.ImageURLHistory)
	s.Equal([]string{prompt}, st.ImagePrompts)
	s.Equal("You take the lantern.", s.lastEntry(st).Text)
	s.Empty(s.lastEntry(st).ImageURL)
}

func (s *OrchestratorTestSuite) TestNoAutoPortraitWithoutCharacterMode() {
	s.setImageMode(entities.ImageModeScene)
	s.expectResponse("[update-backstory]Exiled from court.[/update-backstory]The gates close behind you.")

	st := s.submit("I leave the city")

	s.Equal("Exiled from court.", st.Character.Backstory)
	s.Empty(st.Character.ImageURL)
	s.Empty(st.ImagePrompts)
}

func (s *OrchestratorTestSuite) TestExplicitPortraitSuppressesAutoPortrait() {
	s.expectResponse("[update-backstory]Scarred by fire.[/update-backstory][char-img-prompt]A scarred ranger[/char-img-prompt]Smoke clears.")
	s.mockImages.EXPECT().
		GenerateImage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *llm.ImageRequest) (string, error) {
			s.Equal("A scarred ranger", req.Prompt)
			return "https://img/ranger.png", nil
		}).
		Times(1)

	st := s.submit("I walk through the fire")

	s.Equal("https://img/ranger.png", st.Character.ImageURL)
	s.Equal([]string{"A scarred ranger"}, st.ImagePrompts)
}

func (s *OrchestratorTestSuite) TestLastImageOfEachKindWins() {
	s.setImageMode(entities.ImageModeScene)
	s.expectResponse("[img-prompt]A foggy dock[/img-prompt]The fog lifts.[img-prompt]A sunlit dock[/img-prompt]")
	s.mockImages.EXPECT().
		GenerateImage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *llm.ImageRequest) (string, error) {
			s.Equal("A sunlit dock", req.Prompt)
			s.Equal("4:3", req.Aspect)
			return "https://img/dock.png", nil
		}).
		Times(1)

	st := s.submit("I wait")

	entry := s.lastEntry(st)
	s.Equal("The fog lifts.", entry.Text)
	s.Equal("https://img/dock.png", entry.ImageURL)
	s.Equal([]string{"A sunlit dock"}, st.ImagePrompts)
}

func (s *OrchestratorTestSuite) TestSceneAndPortraitResolveTogether() {
	s.expectResponse("[img-prompt]A bridge[/img-prompt][char-img-prompt]Mira on a bridge[/char-img-prompt]The bridge sways.")
	s.mockImages.EXPECT().
		GenerateImage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *llm.ImageRequest) (string, error) {
			return "img:" + req.Prompt, nil
		}).
		Times(2)

	st := s.submit("I cross")

	s.Equal("img:A bridge", s.lastEntry(st).ImageURL)
	s.Equal("img:Mira on a bridge", st.Character.ImageURL)
	s.ElementsMatch([]string{"A bridge", "Mira on a bridge"}, st.ImagePrompts)
}

func (s *OrchestratorTestSuite) TestSceneImageBackfillsOnlyLastEvent() {
	s.setImageMode(entities.ImageModeScene)
	s.expectResponse("[log-world-event]The bell tolls.[/log-world-event][log-world-event]The gate opens.[/log-world-event][img-prompt]An open gate[/img-prompt]Footsteps echo.")
	s.mockImages.EXPECT().
		GenerateImage(gomock.Any(), gomock.Any()).
		Return("https://img/gate.png", nil)

	st := s.submit("I listen")

	s.Require().Len(st.Game.Timeline, 2)
	s.Empty(st.Game.Timeline[0].ImageURL)
	s.Equal("https://img/gate.png", st.Game.Timeline[1].ImageURL)
}

func (s *OrchestratorTestSuite) TestBackfillKeepsExistingImage() {
	s.setImageMode(entities.ImageModeScene)
	s.store.Apply(func(st *store.State) {
		st.Game.Timeline = []entities.TimelineEvent{{ID: 1, Description: "Old event", ImageURL: "https://img/old.png"}}
	})
	s.expectResponse("[img-prompt]A market[/img-prompt]Stalls everywhere.")
	s.mockImages.EXPECT().
		GenerateImage(gomock.Any(), gomock.Any()).
		Return("https://img/market.png", nil)

	st := s.submit("I browse")

	s.Equal("https://img/old.png", st.Game.Timeline[0].ImageURL)
	s.Equal("https://img/market.png", s.lastEntry(st).ImageURL)
}

func (s *OrchestratorTestSuite) TestPortraitHistoryCapAcrossTurns() {
	s.setImageMode(entities.ImageModeCharacter)

	for i := 1; i <= 12; i++ {
		url := fmt.Sprintf("https://img/p%d.png", i)
		s.expectResponse(fmt.Sprintf("[char-img-prompt]Portrait %d[/char-img-prompt]Time passes.", i))
		s.mockImages.EXPECT().
			GenerateImage(gomock.Any(), gomock.Any()).
			Return(url, nil)
		s.submit("I wait")
	}

	st := s.store.Snapshot()
	s.Equal("https://img/p12.png", st.Character.ImageURL)
	s.Require().Len(st.Character.ImageURLHistory, entities.PortraitHistoryCap)
	s.Equal("https://img/p11.png", st.Character.ImageURLHistory[0])
	s.Equal("https://img/p3.png", st.Character.ImageURLHistory[entities.PortraitHistoryCap-1])
}

func (s *OrchestratorTestSuite) TestImageFailureResolvesToNoImage() {
	s.setImageMode(entities.ImageModeScene)
	s.expectResponse("[log-world-event]A storm rolls in.[/log-world-event][img-prompt]Storm clouds[/img-prompt]Thunder.")
	s.mockImages.EXPECT().
		GenerateImage(gomock.Any(), gomock.Any()).
		Return("", errors.Unavailable("image engine down"))

	st := s.submit("I look up")

	s.Equal("Thunder.", s.lastEntry(st).Text)
	s.Empty(s.lastEntry(st).ImageURL)
	s.Empty(st.Game.Timeline[0].ImageURL)
	s.Equal([]string{"Storm clouds"}, st.ImagePrompts)

	s.NoError(testutil.GatherAndCompare(s.registry, strings.NewReader(`
# HELP director_image_effects_total Image generation effects by kind and result.
# TYPE director_image_effects_total counter
director_image_effects_total{kind="scene",result="failed"} 1
`), "director_image_effects_total"))
}

func (s *OrchestratorTestSuite) TestTextPanicIsRecovered() {
	s.mockText.EXPECT().
		GenerateTurn(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *llm.TurnRequest) (string, error) {
			panic("engine exploded")
		})

	st := s.submit("I pray")

	s.False(st.Game.Loading)
	s.Equal(llm.RemoteFallbackNarrative, s.lastEntry(st).Text)
}

func (s *OrchestratorTestSuite) TestImagePanicIsRecovered() {
	s.setImageMode(entities.ImageModeScene)
	s.expectResponse("[img-prompt]A shrine[/img-prompt]Candles flicker.")
	s.mockImages.EXPECT().
		GenerateImage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *llm.ImageRequest) (string, error) {
			panic("decoder exploded")
		})

	st := s.submit("I kneel")

	s.False(st.Game.Loading)
	s.Equal("Candles flicker.", s.lastEntry(st).Text)
	s.Empty(s.lastEntry(st).ImageURL)
}

func (s *OrchestratorTestSuite) TestRecentTimelineIsBounded() {
	s.store.Apply(func(st *store.State) {
		for i := 1; i <= 8; i++ {
			st.Game.Timeline = append(st.Game.Timeline, entities.TimelineEvent{ID: int64(i), Description: fmt.Sprintf("event %d", i)})
		}
	})
	s.mockText.EXPECT().
		GenerateTurn(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *llm.TurnRequest) (string, error) {
			s.Require().Len(req.RecentTimeline, llm.RecentEventCount)
			s.Equal("event 4", req.RecentTimeline[0].Description)
			s.Equal("event 8", req.RecentTimeline[4].Description)
			return "Nothing happens.", nil
		})

	s.submit("I think back")
}

func (s *OrchestratorTestSuite) TestCompleteOnboarding() {
	s.store.Apply(func(st *store.State) {
		*st = *store.DefaultState(st.Settings)
	})
	s.setImageMode(entities.ImageModeNone)

	s.mockText.EXPECT().
		GenerateTurn(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *llm.TurnRequest) (string, error) {
			s.Equal("Tomas", req.Character.Name)
			s.Equal("Begin at the crossroads", req.PlayerAction)
			s.Equal("A land of rivers", req.World.Lore["geography"])
			return "The crossroads are empty.", nil
		})

	out, err := s.orchestrator.CompleteOnboarding(s.ctx, &turn.CompleteOnboardingInput{
		Character:     entities.Character{Name: "Tomas", Backstory: "A ferryman"},
		World:         entities.World{Lore: map[string]string{"geography": "A land of rivers"}},
		OpeningPrompt: "Begin at the crossroads",
	})
	s.Require().NoError(err)

	st := out.State
	s.Equal(entities.PhasePlaying, st.Game.Phase)
	s.Equal("Tomas", st.Character.Name)
	s.NotNil(st.Character.Skills)
	s.NotNil(st.World.NPCs)
	s.Require().Len(st.Game.StoryLog, 2)
	s.Equal("The crossroads are empty.", st.Game.StoryLog[1].Text)

	_, err = s.orchestrator.CompleteOnboarding(s.ctx, &turn.CompleteOnboardingInput{
		Character:     entities.Character{Name: "Again"},
		OpeningPrompt: "Again",
	})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestCompleteOnboardingRequiresOpeningPrompt() {
	_, err := s.orchestrator.CompleteOnboarding(s.ctx, &turn.CompleteOnboardingInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestUpdateSettings() {
	mode := entities.ImageModeScene
	theme := "ink wash"

	out, err := s.orchestrator.UpdateSettings(s.ctx, &turn.UpdateSettingsInput{
		Patch: entities.SettingsPatch{ImageMode: &mode, ImageTheme: &theme},
	})
	s.Require().NoError(err)
	s.Equal(mode, out.Settings.ImageMode)
	s.Equal(theme, out.Settings.ImageTheme)
	s.Equal(entities.TextEngineGemini, out.Settings.TextEngine)
	s.Equal(out.Settings, s.store.Snapshot().Settings)

	bad := entities.ImageMode("sometimes")
	_, err = s.orchestrator.UpdateSettings(s.ctx, &turn.UpdateSettingsInput{
		Patch: entities.SettingsPatch{ImageMode: &bad},
	})
	s.True(errors.IsInvalidArgument(err))
	s.Equal(mode, s.store.Snapshot().Settings.ImageMode)
}

func (s *OrchestratorTestSuite) TestRestartResetsEverything() {
	mode := entities.ImageModeNone
	_, err := s.orchestrator.UpdateSettings(s.ctx, &turn.UpdateSettingsInput{
		Patch: entities.SettingsPatch{ImageMode: &mode},
	})
	s.Require().NoError(err)

	out, err := s.orchestrator.Restart(s.ctx, &turn.RestartInput{})
	s.Require().NoError(err)

	if diff := cmp.Diff(store.DefaultState(entities.DefaultSettings()), out.State); diff != "" {
		s.Failf("restart did not reset state", "(-want +got):\n%s", diff)
	}
}

func (s *OrchestratorTestSuite) TestSerializeLoadRoundTrip() {
	s.setImageMode(entities.ImageModeNone)
	s.expectResponse("[update-lore]river|The Tessaly runs cold[/update-lore][update-npc-relation]garrick|40[/update-npc-relation]You drink.")
	s.submit("I order a drink")

	saved, err := s.orchestrator.SerializeState(s.ctx, &turn.SerializeStateInput{})
	s.Require().NoError(err)
	before := saved.State

	_, err = s.orchestrator.Restart(s.ctx, &turn.RestartInput{})
	s.Require().NoError(err)

	loaded, err := s.orchestrator.LoadState(s.ctx, &turn.LoadStateInput{Document: saved.Document})
	s.Require().NoError(err)

	if diff := cmp.Diff(before, loaded.State); diff != "" {
		s.Failf("round trip changed state", "(-want +got):\n%s", diff)
	}
	s.Equal(40, loaded.State.World.NPCs[0].Relationship)
}

func (s *OrchestratorTestSuite) TestLoadStateSeedsIDs() {
	doc := []byte(`{"version":2,"gameState":{"phase":"PLAYING","storyLog":[{"id":99999999999999,"type":"narrative","text":"Earlier."}],"timeline":[]}}`)

	_, err := s.orchestrator.LoadState(s.ctx, &turn.LoadStateInput{Document: doc})
	s.Require().NoError(err)

	s.setImageMode(entities.ImageModeNone)
	s.expectResponse("Later.")
	st := s.submit("Continue")

	s.Require().Len(st.Game.StoryLog, 3)
	s.Greater(st.Game.StoryLog[1].ID, int64(99999999999999))
	s.Greater(st.Game.StoryLog[2].ID, st.Game.StoryLog[1].ID)
}

func (s *OrchestratorTestSuite) TestLoadStateMalformedLeavesStateUntouched() {
	before := s.store.Snapshot()

	_, err := s.orchestrator.LoadState(s.ctx, &turn.LoadStateInput{Document: []byte(`{"character":`)})
	s.True(errors.IsDataLoss(err))

	_, err = s.orchestrator.LoadState(s.ctx, &turn.LoadStateInput{})
	s.True(errors.IsInvalidArgument(err))

	if diff := cmp.Diff(before, s.store.Snapshot()); diff != "" {
		s.Failf("state changed after failed load", "(-want +got):\n%s", diff)
	}
}

func (s *OrchestratorTestSuite) TestSubscribeSeesCommittedTurn() {
	s.setImageMode(entities.ImageModeNone)
	var seen []*store.State
	cancel := s.orchestrator.Subscribe(func(st *store.State) {
		seen = append(seen, st)
	})
	defer cancel()

	s.expectResponse("[update-status]Tired[/update-status]You rest.")
	s.submit("I rest")

	s.Require().NotEmpty(seen)
	s.True(seen[0].Game.Loading)
	last := seen[len(seen)-1]
	s.False(last.Game.Loading)
	s.Equal("Tired", last.Character.Status)
	s.Equal("You rest.", last.Game.StoryLog[len(last.Game.StoryLog)-1].Text)
}

func (s *OrchestratorTestSuite) TestGetSnapshotIsACopy() {
	out, err := s.orchestrator.GetSnapshot(s.ctx, &turn.GetSnapshotInput{})
	s.Require().NoError(err)

	out.State.Character.Name = "Changed"
	out.State.World.NPCs[0].Name = "Changed"

	st := s.store.Snapshot()
	s.Equal("Mira", st.Character.Name)
	s.Equal("Garrick", st.World.NPCs[0].Name)
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
