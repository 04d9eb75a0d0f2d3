package core

import "testing"

func TestKeyTriggerExactModifiers(t *testing.T) {
	tr := KeyTrigger(KeyEnter, ModNone)
	if !tr.MatchesKey(KeyEnter, 0, ModNone) {
		t.Fatal("bare Enter did not match")
	}
	if tr.MatchesKey(KeyEnter, 0, ModShift) {
		t.Fatal("Shift+Enter matched a bare Enter binding")
	}
	if tr.MatchesKey(KeyEscape, 0, ModNone) {
		t.Fatal("different key matched")
	}

	shifted := KeyTrigger(KeyEnter, ModShift)
	if shifted.MatchesKey(KeyEnter, 0, ModShift|ModCtrl) {
		t.Fatal("superset of modifiers matched")
	}
	if !shifted.MatchesKey(KeyEnter, 0, ModShift) {
		t.Fatal("exact modifiers did not match")
	}
}

func TestRuneTriggerComparesCharacter(t *testing.T) {
	tr := RuneTrigger('a', ModNone)
	if !tr.MatchesKey(KeyRune, 'a', ModNone) {
		t.Fatal("'a' did not match")
	}
	if tr.MatchesKey(KeyRune, 'b', ModNone) {
		t.Fatal("'b' matched an 'a' binding")
	}
}

func TestTriggerKindsDoNotCrossMatch(t *testing.T) {
	key := KeyTrigger(KeyEnter, ModNone)
	mouse := MouseTrigger(MouseBtnLeft, ModNone)

	if key.MatchesMouse(MouseBtnLeft, ModNone) {
		t.Fatal("key trigger matched a mouse event")
	}
	if mouse.MatchesKey(KeyEnter, 0, ModNone) {
		t.Fatal("mouse trigger matched a key event")
	}
}

func TestJoyTriggerMatchesDeviceAndButton(t *testing.T) {
	tr := JoyTrigger(0, 3)
	if !tr.MatchesJoyButton(JoyButton{Device: 0, Button: 3}) {
		t.Fatal("exact joystick button did not match")
	}
	if tr.MatchesJoyButton(JoyButton{Device: 1, Button: 3}) {
		t.Fatal("same button on another device matched")
	}
}

func TestHatTriggerMatchesDirection(t *testing.T) {
	tr := HatTrigger(HatUp)
	if !tr.MatchesHat(HatUp) {
		t.Fatal("HatUp did not match")
	}
	if tr.MatchesHat(HatUpLeft) {
		t.Fatal("diagonal matched a cardinal binding")
	}
}

func TestReleaseKeyStripsModifiers(t *testing.T) {
	a := RuneTrigger('w', ModShift)
	b := RuneTrigger('w', ModNone)
	if a.ReleaseKey() != b.ReleaseKey() {
		t.Fatal("release keys for same physical key differ across modifiers")
	}
	c := RuneTrigger('x', ModShift)
	if a.ReleaseKey() == c.ReleaseKey() {
		t.Fatal("release keys for different characters collide")
	}
}

func TestTriggerString(t *testing.T) {
	cases := []struct {
		tr   Trigger
		want string
	}{
		{RuneTrigger('w', ModNone), "w"},
		{RuneTrigger('w', ModShift), "Shift+w"},
		{KeyTrigger(KeyEnter, ModCtrl|ModAlt), "Ctrl+Alt+Enter"},
		{MouseTrigger(MouseBtnLeft, ModNone), "Left Mouse"},
		{HatTrigger(HatDown), "Hat Down"},
		{Trigger{}, "Unbound"},
	}
	for _, c := range cases {
		if got := c.tr.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}
