package geometry

import (
	"fmt"
	"math"
	"time"
)

// Options configure a single measurement.
type Options struct {
	Direction Direction
	AutoFill  bool
	// MultiLine limits the container to this many text lines (0 = off).
	MultiLine int
	// Speed in cells per second; only used for CycleDuration.
	Speed float64
	// Viewport clamps the container; zero dimensions are ignored.
	Viewport Size
}

// Result is the outcome of Measure. The zero Result is invalid and must not
// drive an animation.
type Result struct {
	Container Size
	// Content already includes the auto-fill repeats.
	Content       Size
	Fits          bool
	FillCount     int
	CycleDuration time.Duration
	Valid         bool
}

func (r Result) String() string {
	if !r.Valid {
		return "result(invalid)"
	}
	return fmt.Sprintf("content=%s container=%s fits=%t fill=%d cycle=%s",
		r.Content, r.Container, r.Fits, r.FillCount, r.CycleDuration)
}

// Measure reads the natural size of content inside container and derives the
// fit decision. Both elements get their original constraints back before
// Measure returns, including when Bounds fails or panics.
func Measure(content, container Element, opts Options) (res Result, err error) {
	if content == nil || container == nil {
		return Result{}, nil
	}

	savedContent := content.Constraints()
	savedContainer := container.Constraints()
	defer func() {
		if r := recover(); r != nil {
			res, err = Result{}, fmt.Errorf("measure: %v", r)
		}
	}()
	defer func() {
		content.SetConstraints(savedContent)
		container.SetConstraints(savedContainer)
	}()

	natural := savedContent
	natural.Display = DisplayInline
	natural.MinWidth, natural.MinHeight = 0, 0
	natural.MaxWidth, natural.MaxHeight = 0, 0
	natural.Overflow = OverflowVisible
	content.SetConstraints(natural)

	box := savedContainer
	box.Display = DisplayInline
	box.ClampToParent = true
	box.Overflow = OverflowHidden
	if opts.AutoFill {
		box.Fill = true
	}
	container.SetConstraints(box)

	containerSize, err := container.Bounds()
	if err != nil {
		return Result{}, fmt.Errorf("measure container: %w", err)
	}
	contentSize, err := content.Bounds()
	if err != nil {
		return Result{}, fmt.Errorf("measure content: %w", err)
	}

	var lineHeight float64
	if opts.MultiLine > 0 {
		line := natural
		line.NoWrap = true
		content.SetConstraints(line)
		single, err := content.Bounds()
		if err != nil {
			return Result{}, fmt.Errorf("measure line height: %w", err)
		}
		lineHeight = single.Height
		content.SetConstraints(natural)
	}

	if opts.Viewport.Width > 0 {
		containerSize.Width = math.Min(containerSize.Width, opts.Viewport.Width)
	}
	if opts.Viewport.Height > 0 {
		containerSize.Height = math.Min(containerSize.Height, opts.Viewport.Height)
	}
	if opts.MultiLine > 0 {
		containerSize.Height = math.Min(lineHeight*float64(opts.MultiLine), containerSize.Height)
	}

	return decide(contentSize, containerSize, opts), nil
}

// decide applies the fit, fill and duration rules to measured sizes.
func decide(content, container Size, opts Options) Result {
	axis := opts.Direction.Axis()
	c := content.Along(axis)
	s := container.Along(axis)

	res := Result{
		Container: container,
		Content:   content,
		Fits:      true,
		FillCount: 1,
		Valid:     true,
	}
	if c <= 0 || s <= 0 {
		return res
	}

	if opts.AutoFill && math.Round(c) != math.Round(s) {
		res.FillCount = int(math.Ceil(s / c))
		if res.FillCount < 1 {
			res.FillCount = 1
		}
	}
	res.Fits = !opts.AutoFill && math.Round(c) <= math.Round(s)

	if res.FillCount > 1 {
		c *= float64(res.FillCount)
	}
	if res.Fits {
		c = s
	}
	res.Content = content.With(axis, c)

	if opts.Speed > 0 {
		seconds := math.Max(c, s) / opts.Speed
		res.CycleDuration = time.Duration(seconds * float64(time.Second))
	}
	return res
}
