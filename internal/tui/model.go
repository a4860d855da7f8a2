package tui

import (
	"context"
	"errors"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/liftoff/internal/launch"
	"github.com/garrettladley/liftoff/internal/tui/components/footer"
	"github.com/garrettladley/liftoff/internal/tui/page/browser"
	"github.com/garrettladley/liftoff/internal/tui/page/intro"
	"github.com/garrettladley/liftoff/internal/tui/page/splash"
	"github.com/garrettladley/liftoff/internal/tui/page/survey"
	"github.com/garrettladley/liftoff/internal/tui/page/update"
	"github.com/garrettladley/liftoff/internal/tui/theme"
	"github.com/garrettladley/liftoff/internal/xslog"
)

var _ tea.Model = (*Model)(nil)

type page uint

const (
	splashPage page = iota
	introPage
	updatePage
	surveyPage
	browserPage
)

func (p page) String() string {
	switch p {
	case splashPage:
		return "splash"
	case introPage:
		return "intro"
	case updatePage:
		return "update"
	case surveyPage:
		return "survey"
	case browserPage:
		return "browser"
	default:
		return "unknown"
	}
}

type state struct {
	splashLoading bool
	intro         intro.State
	update        update.State
	survey        survey.State
	browser       browser.State
}

type Model struct {
	ready          bool
	page           page
	viewportWidth  int
	viewportHeight int
	theme          theme.Theme
	state          state
	deps           Deps
}

func New(deps Deps) Model {
	return Model{
		page:  splashPage,
		theme: theme.New(),
		deps:  deps,
	}
}

func (m *Model) Init() tea.Cmd {
	ctx := m.deps.Ctx
	cmds := []tea.Cmd{
		runLaunchCmd(ctx, m.deps.Launcher, m.deps.Delegate, m.deps.AppVersion),
		splashLoadingCmd(),
		waitForSurveyStateCmd(m.deps.SurveyStates),
		contextDoneCmd(ctx),
	}
	if m.deps.Fetcher != nil {
		cmds = append(cmds, fetchExperimentsCmd(ctx, m.deps.Fetcher))
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ctx := m.deps.Ctx
	logger := m.deps.Logger

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewportWidth = msg.Width
		m.viewportHeight = msg.Height
		m.ready = true

	case tea.KeyPressMsg:
		return m, m.handleKey(msg.String())

	case SplashLoadingMsg:
		if m.page == splashPage {
			m.state.splashLoading = true
		}

	case ExperimentsFetchedMsg:
		if msg.Err != nil {
			logger.WarnContext(ctx, "experiments fetch failed", xslog.Error(msg.Err))
		}

	case LaunchResolvedMsg:
		return m, m.resolve(msg)

	case LaunchFailedMsg:
		if errors.Is(msg.Err, context.Canceled) {
			return m, tea.Quit
		}
		logger.ErrorContext(ctx, "launch failed, opening browser", xslog.Error(msg.Err))
		return m, m.enterBrowser()

	case IntroSavedMsg:
		m.state.intro.Saving = false
		if msg.Err != nil {
			logger.ErrorContext(ctx, "failed to record intro", xslog.Error(msg.Err))
			m.state.intro.ErrorMsg = "Could not save your progress. Press Enter to try again."
			return m, nil
		}
		return m, m.enterBrowser()

	case UpdateSavedMsg:
		if msg.Err != nil {
			logger.WarnContext(ctx, "failed to record update sheet", xslog.Error(msg.Err))
		}
		return m, m.enterBrowser()

	case SurveyMessageMsg:
		if !msg.OK {
			return m, m.enterBrowser()
		}
		m.state.survey.Message = msg.Message
		return m, messageActionCmd(ctx, "survey displayed", m.deps.Messages.OnMessageDisplayed, msg.Message)

	case PromptMsg:
		if msg.Err != nil {
			logger.WarnContext(ctx, "failed to show micro-survey", xslog.Error(msg.Err))
			return m, nil
		}
		if !msg.OK {
			return m, nil
		}
		m.state.browser.Prompt = msg.Prompt
		return m, surveyActionCmd(ctx, "prompt displayed", m.deps.MicroSurvey.HandleMessageDisplayed)

	case SurveyStateMsg:
		prev := m.state.browser.Window
		m.state.browser.Window = msg.State
		if !msg.State.IsSurveyShown || !prev.IsSurveyShown {
			m.state.browser.Rating = 0
		}
		return m, waitForSurveyStateCmd(m.deps.SurveyStates)

	case ActionErrMsg:
		logger.WarnContext(ctx, "action failed", xslog.Action(msg.Action), xslog.Error(msg.Err))
	}

	return m, nil
}

func (m *Model) resolve(msg LaunchResolvedMsg) tea.Cmd {
	if !msg.OK {
		return m.enterBrowser()
	}

	switch msg.Type.Kind() {
	case launch.KindIntro:
		m.page = introPage
	case launch.KindUpdate:
		m.page = updatePage
		m.state.update.Version = msg.Type.Version()
	case launch.KindSurvey:
		m.page = surveyPage
		return surveyMessageCmd(m.deps.Ctx, m.deps.Survey)
	default:
		return m.enterBrowser()
	}
	return nil
}

func (m *Model) enterBrowser() tea.Cmd {
	m.page = browserPage
	if m.deps.MicroSurvey == nil {
		return nil
	}
	return showPromptCmd(m.deps.Ctx, m.deps.MicroSurvey)
}

func (m *Model) handleKey(key string) tea.Cmd {
	if key == "ctrl+c" {
		return tea.Quit
	}

	ctx := m.deps.Ctx

	switch m.page {
	case splashPage:
		if key == "q" {
			return tea.Quit
		}

	case introPage:
		if key == "enter" && !m.state.intro.Saving {
			m.state.intro.Saving = true
			m.state.intro.ErrorMsg = ""
			return didSeeIntroCmd(ctx, m.deps.Intro, m.deps.AppVersion)
		}

	case updatePage:
		if key == "enter" {
			return didShowUpdateCmd(ctx, m.deps.Update, m.deps.AppVersion)
		}

	case surveyPage:
		msg := m.state.survey.Message
		switch key {
		case "enter":
			return tea.Batch(
				messageActionCmd(ctx, "survey pressed", m.deps.Messages.OnMessagePressed, msg),
				m.enterBrowser(),
			)
		case "esc":
			return tea.Batch(
				messageActionCmd(ctx, "survey dismissed", m.deps.Messages.OnMessageDismissed, msg),
				m.enterBrowser(),
			)
		}

	case browserPage:
		return m.handleBrowserKey(key)
	}

	return nil
}

func (m *Model) handleBrowserKey(key string) tea.Cmd {
	ctx := m.deps.Ctx
	window := m.state.browser.Window
	ms := m.deps.MicroSurvey

	switch {
	case window.IsSurveyShown:
		switch key {
		case "enter":
			if m.state.browser.Rating == 0 {
				return nil
			}
			m.deps.Logger.InfoContext(ctx, "micro-survey submitted",
				xslog.MessageID(m.state.browser.Prompt.MessageID),
				xslog.Count(m.state.browser.Rating),
			)
			return surveyActionCmd(ctx, "survey submit", ms.Dismiss)
		case "esc":
			return surveyActionCmd(ctx, "survey close", ms.CloseSurvey)
		default:
			if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= browser.MaxRating {
				m.state.browser.Rating = n
			}
		}
		return nil

	case window.IsPromptShown:
		switch key {
		case "enter":
			return surveyActionCmd(ctx, "prompt open", ms.Open)
		case "x":
			return surveyActionCmd(ctx, "prompt dismiss", ms.Dismiss)
		}
	}

	if key == "q" {
		return tea.Quit
	}
	return nil
}

func (m *Model) View() tea.View {
	view := tea.NewView("")
	view.AltScreen = true

	// splash uses pure black BG, everything else uses default dark
	if m.page == splashPage {
		view.BackgroundColor = theme.ColorBlack
	} else {
		view.BackgroundColor = m.theme.Background()
	}

	if !m.ready {
		return view
	}

	if m.page == splashPage {
		view.SetContent(splash.View(m.theme, m.state.splashLoading, m.viewportWidth, m.viewportHeight))
		return view
	}

	foot := footer.New(m.viewportWidth, m.keyHints()...).Render()
	height := max(m.viewportHeight-lipgloss.Height(foot), 0)

	var content string
	switch m.page {
	case introPage:
		content = intro.View(m.theme, m.state.intro, m.viewportWidth, height)
	case updatePage:
		content = update.View(m.theme, m.state.update, m.viewportWidth, height)
	case surveyPage:
		content = survey.View(m.theme, m.state.survey, m.viewportWidth, height)
	case browserPage:
		content = browser.View(m.theme, m.state.browser, m.viewportWidth, height)
	}

	view.SetContent(lipgloss.JoinVertical(lipgloss.Left, content, foot))
	return view
}

func (m *Model) keyHints() []footer.Hint {
	switch m.page {
	case introPage, updatePage:
		return []footer.Hint{{Key: "enter", Desc: "continue"}, {Key: "ctrl+c", Desc: "quit"}}
	case surveyPage:
		return []footer.Hint{{Key: "enter", Desc: "open"}, {Key: "esc", Desc: "not now"}}
	case browserPage:
		switch {
		case m.state.browser.Window.IsSurveyShown:
			return []footer.Hint{{Key: "1-5", Desc: "rate"}, {Key: "enter", Desc: "submit"}, {Key: "esc", Desc: "back"}}
		case m.state.browser.Window.IsPromptShown:
			return []footer.Hint{{Key: "enter", Desc: "open survey"}, {Key: "x", Desc: "close"}, {Key: "q", Desc: "quit"}}
		}
		return []footer.Hint{{Key: "q", Desc: "quit"}}
	default:
		return nil
	}
}
