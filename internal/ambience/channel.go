package ambience

// Channel is one logical audio source with its own volume and play state.
// The playback handle is opaque; the registry never reads audio data.
type Channel struct {
	id      string
	player  Player
	loop    bool
	volume  float64
	playing bool
}

func (c *Channel) ID() string      { return c.id }
func (c *Channel) Volume() float64 { return c.volume }
func (c *Channel) Playing() bool   { return c.playing }
func (c *Channel) Loop() bool      { return c.loop }

// ChannelRegistry owns the set of named channels. It is mutated only under
// the engine mutex, so it carries no locking of its own. The effective
// device volume of a channel is its own volume scaled by the master volume.
type ChannelRegistry struct {
	master   float64
	channels map[string]*Channel
}

func NewChannelRegistry() *ChannelRegistry {
	return &ChannelRegistry{
		master:   1.0,
		channels: make(map[string]*Channel),
	}
}

// Create allocates channel state. It does not start playback. Creating a
// channel under an existing id replaces the old one.
func (cr *ChannelRegistry) Create(id string, player Player, loop bool, initialVolume float64) *Channel {
	c := &Channel{
		id:     id,
		player: player,
		loop:   loop,
		volume: clampF(initialVolume, 0, 1),
	}
	c.player.SetVolume(c.volume * cr.master)
	cr.channels[id] = c
	return c
}

// Play starts playback. A refused play attempt (device not ready, platform
// blocks unsolicited audio) is swallowed: the channel stays paused and the
// caller may retry later.
func (cr *ChannelRegistry) Play(c *Channel) {
	if c == nil {
		return
	}
	if err := c.player.Play(); err != nil {
		return
	}
	c.playing = true
}

func (cr *ChannelRegistry) Pause(c *Channel) {
	if c == nil {
		return
	}
	if err := c.player.Pause(); err != nil {
		return
	}
	c.playing = false
}

// SetVolume clamps v to [0,1] before applying. Out-of-range input is never
// an error.
func (cr *ChannelRegistry) SetVolume(c *Channel, v float64) {
	if c == nil {
		return
	}
	c.volume = clampF(v, 0, 1)
	c.player.SetVolume(c.volume * cr.master)
}

func (cr *ChannelRegistry) SeekToStart(c *Channel) {
	if c == nil {
		return
	}
	// Seek failures degrade to playing from the current position.
	_ = c.player.SeekToStart()
}

// SetMaster rescales every channel's device volume.
func (cr *ChannelRegistry) SetMaster(v float64) {
	cr.master = clampF(v, 0, 1)
	for _, c := range cr.channels {
		c.player.SetVolume(c.volume * cr.master)
	}
}

func (cr *ChannelRegistry) PauseAll() {
	for _, c := range cr.channels {
		cr.Pause(c)
	}
}

// Close releases every playback handle and empties the registry.
func (cr *ChannelRegistry) Close() {
	for id, c := range cr.channels {
		_ = c.player.Close()
		delete(cr.channels, id)
	}
}
