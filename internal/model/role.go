package model

// Role 用户角色，显式有序枚举：student < admin < developer
type Role string

const (
	RoleStudent   Role = "student"
	RoleAdmin     Role = "admin"
	RoleDeveloper Role = "developer"
)

// roleLevels 角色权限等级
var roleLevels = map[Role]int{
	RoleStudent:   1,
	RoleAdmin:     2,
	RoleDeveloper: 3,
}

// Valid 是否为已知角色
func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

// AtLeast 当前角色权限是否不低于 other
// 未知角色视为最低权限
func (r Role) AtLeast(other Role) bool {
	return roleLevels[r] >= roleLevels[other]
}

// String 实现 fmt.Stringer
func (r Role) String() string { return string(r) }
