package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/mathfall/config"
	"github.com/lixenwraith/mathfall/constant"
	"github.com/lixenwraith/mathfall/equation"
	"github.com/lixenwraith/mathfall/logger"
	"github.com/lixenwraith/mathfall/particle"
	"github.com/lixenwraith/mathfall/status"
	"github.com/lixenwraith/mathfall/vmath"
)

// Status is the session lifecycle state
type Status uint8

const (
	StatusWaiting Status = iota
	StatusPlaying
	StatusEnded
)

func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusPlaying:
		return "playing"
	case StatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for _, v := range []Status{StatusWaiting, StatusPlaying, StatusEnded} {
		if v.String() == string(text) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// PenaltyMode selects what a bottom crossing costs; one mode per deployment
type PenaltyMode uint8

const (
	// PenaltyDefense damages the town when the crossing blast completes
	PenaltyDefense PenaltyMode = iota
	// PenaltyScore deducts points at the crossing
	PenaltyScore
)

func (m PenaltyMode) String() string {
	switch m {
	case PenaltyDefense:
		return config.ModeDefense
	case PenaltyScore:
		return config.ModeScore
	default:
		return "unknown"
	}
}

func (m PenaltyMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *PenaltyMode) UnmarshalText(text []byte) error {
	v, err := ParsePenaltyMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParsePenaltyMode maps a config mode name to its mode
func ParsePenaltyMode(name string) (PenaltyMode, error) {
	switch name {
	case config.ModeDefense:
		return PenaltyDefense, nil
	case config.ModeScore:
		return PenaltyScore, nil
	default:
		return 0, fmt.Errorf("unknown penalty mode %q", name)
	}
}

// Sound is the audio handle owned by a session
// Music runs between Start and the transition into ended
type Sound interface {
	PlayCorrect()
	PlayLevelUp()
	PlayGameOver()
	PlayBlast()
	StartMusic()
	StopMusic()
}

// NopSound is the silent Sound used when audio is unavailable
type NopSound struct{}

func (NopSound) PlayCorrect()  {}
func (NopSound) PlayLevelUp()  {}
func (NopSound) PlayGameOver() {}
func (NopSound) PlayBlast()    {}
func (NopSound) StartMusic()   {}
func (NopSound) StopMusic()    {}

// Snapshot is a read-only copy of the session for renderers and observers
type Snapshot struct {
	Status     Status              `json:"status"`
	Mode       PenaltyMode         `json:"mode"`
	Level      equation.Level      `json:"level"`
	TimeLeft   int                 `json:"time_left"`
	Duration   int                 `json:"duration"`
	Score      int                 `json:"score"`
	TownHealth int                 `json:"town_health"`
	Answered   int                 `json:"questions_answered"`
	Quota      int                 `json:"quota"`
	Background string              `json:"background"`
	Crossings  int                 `json:"crossings"`
	Count      int                 `json:"equations"`
	Equations  []equation.Equation `json:"-"`
}

// Options configures a session
type Options struct {
	Mode     PenaltyMode
	Levels   config.LevelTable
	Width    float64
	Height   float64
	Sound    Sound
	Registry *status.Registry
	Rand     *vmath.FastRand
}

// Session is the game state machine: waiting, playing, ended
// All methods run on the loop goroutine
type Session struct {
	mode   PenaltyMode
	levels config.LevelTable
	sched  *Scheduler
	scope  *Scope

	manager *equation.Manager
	impacts *Impacts
	sound   Sound

	status    Status
	level     equation.Level
	timeLeft  int
	score     int
	health    int
	answered  int
	crossings int

	observers []func(Snapshot)
	log       *logrus.Entry

	statScore     *atomic.Int64
	statLevel     *atomic.Int64
	statTimeLeft  *atomic.Int64
	statHealth    *atomic.Int64
	statAnswered  *atomic.Int64
	statCrossings *atomic.Int64
	statCount     *atomic.Int64
	statProgress  *status.AtomicFloat
	statStatus    *status.AtomicString
	statMode      *status.AtomicString
}

// NewSession creates a waiting session driven by sched
func NewSession(sched *Scheduler, opts Options) *Session {
	if opts.Sound == nil {
		opts.Sound = NopSound{}
	}
	if opts.Registry == nil {
		opts.Registry = status.NewRegistry()
	}
	if opts.Rand == nil {
		opts.Rand = vmath.NewTimeSeededRand()
	}
	if opts.Levels == (config.LevelTable{}) {
		opts.Levels = config.DefaultLevelTable()
	}

	s := &Session{
		mode:   opts.Mode,
		levels: opts.Levels,
		sched:  sched,
		sound:  opts.Sound,
		status: StatusWaiting,
		level:  equation.FirstLevel,
		health: constant.TownHealthMax,
		log:    logger.Component("session").WithField("mode", opts.Mode.String()),
	}

	s.manager = equation.NewManager(opts.Width, opts.Height, s.bottomMargin(), opts.Rand.Fork())
	s.manager.SetCrossHandler(s.onCross)
	s.manager.SetDeferrer(s.deferRemoval)
	s.impacts = NewImpacts(s.manager.BottomThreshold(), opts.Rand.Fork())

	reg := opts.Registry
	s.statScore = reg.Ints.Get("session.score")
	s.statLevel = reg.Ints.Get("session.level")
	s.statTimeLeft = reg.Ints.Get("session.time_left")
	s.statHealth = reg.Ints.Get("session.town_health")
	s.statAnswered = reg.Ints.Get("session.questions")
	s.statCrossings = reg.Ints.Get("session.crossings")
	s.statCount = reg.Ints.Get("session.equations")
	s.statProgress = reg.Floats.Get("session.level_progress")
	s.statStatus = reg.Strings.Get("session.status")
	s.statMode = reg.Strings.Get("session.mode")
	s.statMode.Store(s.mode.String())
	s.timeLeft = s.levels.MustLevel(s.level).Seconds()
	s.publish()

	return s
}

// Observe registers fn to receive a snapshot after every state transition
func (s *Session) Observe(fn func(Snapshot)) {
	s.observers = append(s.observers, fn)
}

// Start begins a new game from any state
func (s *Session) Start() {
	if s.scope != nil {
		s.scope.Release()
	}
	s.scope = s.sched.NewScope()

	s.score = 0
	s.level = equation.FirstLevel
	s.health = constant.TownHealthMax
	s.answered = 0
	s.crossings = 0
	s.timeLeft = s.levels.MustLevel(s.level).Seconds()

	s.manager.Reset()
	s.impacts.Reset()
	s.impacts.Bind(s.scope)
	s.status = StatusPlaying

	s.scope.Every(constant.AdvanceInterval, s.advance)
	s.scope.Every(constant.SpawnInterval, s.spawn)
	s.scope.Every(constant.CountdownInterval, s.Tick)

	s.sound.StartMusic()
	s.log.WithField("level", s.level).Info("session started")
	s.notify()
}

// Tick is the 1 Hz countdown; reaching zero progresses the level
func (s *Session) Tick() {
	if s.status != StatusPlaying {
		return
	}
	if s.timeLeft > 0 {
		s.timeLeft--
	}
	if s.timeLeft == 0 {
		s.ProgressLevel()
		return
	}
	s.notify()
}

// ProgressLevel moves to the next level, or ends the game after the last one
func (s *Session) ProgressLevel() {
	if s.status != StatusPlaying {
		return
	}
	if s.level.IsLast() {
		s.end("final level complete")
		return
	}

	s.level = s.level.Next()
	s.timeLeft = s.levels.MustLevel(s.level).Seconds()
	s.answered = 0
	s.manager.Reset()
	s.impacts.Reset()

	s.sound.PlayLevelUp()
	s.log.WithFields(logrus.Fields{
		"level": s.level,
		"score": s.score,
	}).Info("level up")
	s.notify()
}

// Submit matches player input; malformed or unmatched input is silently ignored
func (s *Session) Submit(input string) (uint64, bool) {
	if s.status != StatusPlaying {
		return 0, false
	}

	id, ok := s.manager.Resolve(input)
	if !ok {
		return 0, false
	}

	s.score += constant.ScoreCorrect
	s.answered++
	s.impacts.Highlight(id)
	s.sound.PlayCorrect()
	s.log.WithFields(logrus.Fields{
		"equation_id": id,
		"score":       s.score,
	}).Debug("answer matched")

	if quota := s.levels.MustLevel(s.level).Quota; quota > 0 && s.answered >= quota {
		s.ProgressLevel()
		return id, true
	}
	s.notify()
	return id, true
}

// End forces the session into ended
func (s *Session) End() {
	if s.status == StatusEnded {
		return
	}
	s.end("ended by player")
}

// Resize re-applies the field layout
func (s *Session) Resize(width, height float64) {
	s.manager.Resize(width, height)
	s.impacts.SetThreshold(s.manager.BottomThreshold())
}

// Release cancels every session timer; used on teardown
func (s *Session) Release() {
	if s.scope != nil {
		s.scope.Release()
	}
	s.sound.StopMusic()
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() Snapshot {
	spec := s.levels.MustLevel(s.level)
	eqs := s.manager.Equations()
	return Snapshot{
		Status:     s.status,
		Mode:       s.mode,
		Level:      s.level,
		TimeLeft:   s.timeLeft,
		Duration:   spec.Seconds(),
		Score:      s.score,
		TownHealth: s.health,
		Answered:   s.answered,
		Quota:      spec.Quota,
		Background: spec.Background,
		Crossings:  s.crossings,
		Count:      len(eqs),
		Equations:  eqs,
	}
}

// Draw renders the fireballs and their labels
func (s *Session) Draw(c particle.Canvas) {
	s.impacts.Draw(c)
}

func (s *Session) Status() Status { return s.status }

func (s *Session) Level() equation.Level { return s.level }

func (s *Session) Score() int { return s.score }

func (s *Session) TimeLeft() int { return s.timeLeft }

func (s *Session) TownHealth() int { return s.health }

func (s *Session) Mode() PenaltyMode { return s.mode }

// BottomThreshold is the crossing line in field pixels
func (s *Session) BottomThreshold() float64 { return s.manager.BottomThreshold() }

func (s *Session) bottomMargin() float64 {
	if s.mode == PenaltyDefense {
		return constant.TownHeight
	}
	return 0
}

func (s *Session) advance() {
	s.manager.Advance(s.level)
	if s.status != StatusPlaying {
		return
	}
	s.impacts.Sync(s.manager.Equations())
	s.statCount.Store(int64(s.manager.Len()))
}

func (s *Session) spawn() {
	if eq, ok := s.manager.Spawn(s.level); ok {
		s.impacts.Sync(s.manager.Equations())
		s.statCount.Store(int64(s.manager.Len()))
		s.log.WithFields(logrus.Fields{
			"equation_id": eq.ID,
			"level":       s.level,
		}).Debug("equation spawned")
	}
}

// deferRemoval ties delayed match removal to the session scope
func (s *Session) deferRemoval(d time.Duration, fn func()) {
	if s.scope == nil {
		fn()
		return
	}
	s.scope.After(d, func() {
		fn()
		s.impacts.Sync(s.manager.Equations())
		s.statCount.Store(int64(s.manager.Len()))
		s.notify()
	})
}

func (s *Session) onCross(eq equation.Equation) {
	if s.status != StatusPlaying {
		return
	}
	s.crossings++
	s.sound.PlayBlast()

	fields := logrus.Fields{"equation_id": eq.ID, "level": s.level}
	switch s.mode {
	case PenaltyScore:
		s.score -= constant.ScoreCrossPenalty
		if s.score < 0 {
			s.score = 0
		}
		s.impacts.Detonate(eq, nil)
		fields["score"] = s.score
	case PenaltyDefense:
		s.impacts.Detonate(eq, s.onImpact)
	}
	s.log.WithFields(fields).Debug("equation crossed")
	s.notify()
}

// onImpact applies town damage when a crossing blast completes
func (s *Session) onImpact() {
	if s.status != StatusPlaying {
		return
	}
	s.health -= constant.TownImpactDamage
	if s.health <= 0 {
		s.health = 0
		s.end("town destroyed")
		return
	}
	s.log.WithField("town_health", s.health).Debug("town hit")
	s.notify()
}

func (s *Session) end(reason string) {
	s.status = StatusEnded
	if s.scope != nil {
		s.scope.Release()
	}
	s.sound.StopMusic()
	s.sound.PlayGameOver()
	s.log.WithFields(logrus.Fields{
		"level":  s.level,
		"score":  s.score,
		"reason": reason,
	}).Info("session ended")
	s.notify()
}

func (s *Session) publish() {
	s.statScore.Store(int64(s.score))
	s.statLevel.Store(int64(s.level))
	s.statTimeLeft.Store(int64(s.timeLeft))
	s.statHealth.Store(int64(s.health))
	s.statAnswered.Store(int64(s.answered))
	s.statCrossings.Store(int64(s.crossings))
	s.statCount.Store(int64(s.manager.Len()))
	s.statStatus.Store(s.status.String())

	// Fraction of the level timer already spent
	if d := s.levels.MustLevel(s.level).Seconds(); d > 0 {
		s.statProgress.Set(1 - float64(s.timeLeft)/float64(d))
	}
}

func (s *Session) notify() {
	s.publish()
	if len(s.observers) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, fn := range s.observers {
		fn(snap)
	}
}
