package webdemo

import "math"

// SetTransport updates the tempo in BPM. Steps are sixteenth notes.
func (e *Engine) SetTransport(tempoBPM float64) {
	if tempoBPM > 0 && !math.IsInf(tempoBPM, 0) {
		e.tempoBPM = tempoBPM
	}
}

// SetRunning starts or stops step triggering.
func (e *Engine) SetRunning(running bool) {
	if running && !e.running {
		e.currentStep = 0
		e.samplesUntilNextStep = 0
	}
	e.running = running
}

// SetSteps updates the 16-step pattern.
func (e *Engine) SetSteps(steps []StepConfig) {
	for i := 0; i < stepCount && i < len(steps); i++ {
		cfg := steps[i]
		if cfg.Note < 0 || cfg.Note > 127 || math.IsNaN(cfg.Note) {
			cfg.Note = 57
		}
		e.steps[i] = cfg
	}
}

// CurrentStep returns the index of the last triggered step, or -1 when
// stopped.
func (e *Engine) CurrentStep() int {
	if !e.running {
		return -1
	}
	return (e.currentStep + stepCount - 1) % stepCount
}

// samplesToStep returns how many samples remain before the next step
// boundary, triggering the step when it is due.
func (e *Engine) samplesToStep() int {
	if e.samplesUntilNextStep <= 0 {
		e.triggerCurrentStep()
		e.currentStep = (e.currentStep + 1) % stepCount
		e.samplesUntilNextStep += e.stepDurationSamples()
	}
	return max(1, int(math.Ceil(e.samplesUntilNextStep)))
}

func (e *Engine) advance(n int) {
	e.samplesUntilNextStep -= float64(n)
}

func (e *Engine) triggerCurrentStep() {
	step := e.steps[e.currentStep]
	if !step.Enabled {
		return
	}
	e.NoteOn(step.Note)
}

func (e *Engine) stepDurationSamples() float64 {
	return e.sampleRate * 60.0 / e.tempoBPM / 4.0
}
