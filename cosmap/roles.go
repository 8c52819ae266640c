package cosmap

// StandardJoints are the roles a skeleton's joints can be mapped onto. The
// empty string means no role.
var StandardJoints = []string{
	"",
	"root",
	"pelvis",
	"spine_1",
	"spine_2",
	"neck",
	"head",
	"left_clavicle",
	"left_shoulder",
	"left_elbow",
	"left_wrist",
	"right_clavicle",
	"right_shoulder",
	"right_elbow",
	"right_wrist",
	"left_hip",
	"left_knee",
	"left_ankle",
	"left_toe",
	"right_hip",
	"right_knee",
	"right_ankle",
	"right_toe",

	"left_thumb_base", "left_thumb_mid", "left_thumb_tip", "left_thumb_end",
	"left_index_finger_root", "left_index_finger_base", "left_index_finger_mid", "left_index_finger_tip", "left_index_finger_end",
	"left_middle_finger_root", "left_middle_finger_base", "left_middle_finger_mid", "left_middle_finger_tip", "left_middle_finger_end",
	"left_ring_finger_root", "left_ring_finger_base", "left_ring_finger_mid", "left_ring_finger_tip", "left_ring_finger_end",
	"left_pinky_finger_root", "left_pinky_finger_base", "left_pinky_finger_mid", "left_pinky_finger_tip", "left_pinky_finger_end",

	"right_thumb_base", "right_thumb_mid", "right_thumb_tip", "right_thumb_end",
	"right_index_finger_root", "right_index_finger_base", "right_index_finger_mid", "right_index_finger_tip", "right_index_finger_end",
	"right_middle_finger_root", "right_middle_finger_base", "right_middle_finger_mid", "right_middle_finger_tip", "right_middle_finger_end",
	"right_ring_finger_root", "right_ring_finger_base", "right_ring_finger_mid", "right_ring_finger_tip", "right_ring_finger_end",
	"right_pinky_finger_root", "right_pinky_finger_base", "right_pinky_finger_mid", "right_pinky_finger_tip", "right_pinky_finger_end",
}

// IsStandardJoint returns true if role is one of StandardJoints.
func IsStandardJoint(role string) bool {
	for _, r := range StandardJoints {
		if r == role {
			return true
		}
	}
	return false
}
